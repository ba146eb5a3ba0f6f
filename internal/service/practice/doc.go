// Package practice hosts live practice sessions for HTTP clients.
//
// Each session is a domain.Session held in memory under a random ID. The
// service adds the rules a client must follow on top of the permissive state
// machine: one outcome per question, no advancing past an unanswered
// question, and bounded question counts. It can advance sessions on its own
// after a configurable delay and emits lifecycle events when sessions start,
// complete or reset.
package practice
