// Package abaplus is a reasoning engine for Assumption-Based Argumentation
// with preferences (ABA+).
//
// 🧩 What is abaplus?
//
//	Given a knowledge base — a propositional language, a set of assumptions,
//	a contrariness mapping, a rule set, and a strict preference order over
//	assumptions — abaplus:
//
//	  • rewrites the knowledge base into canonical atomic and non-circular
//	    normal forms
//	  • derives the closed set of arguments the knowledge base supports
//	  • computes the standard, normal, and reverse ABA+ attack relations
//
// ✨ Design
//
//   - Pure, synchronous pipeline — a Framework value flows through rewrite,
//     derive, and attack stages with no shared mutable state.
//   - Deterministic — arguments and attacks are a deterministic function of
//     the input framework after a canonical sort at entry.
//   - Thin adapters — a line-oriented text parser, a CLI, and an HTTP
//     surface wrap the reasoning core without adding business logic of
//     their own.
//
// Under the hood, the reasoning core lives under internal/ since this
// module's only public surface is the CLI (cmd/abaplus) and the HTTP
// report endpoint (internal/server):
//
//	internal/framework/   — Framework, Literal, Rule, Argument, Attack model
//	internal/dependency/  — rule-dependency graph + cycle enumeration
//	internal/noncircular/ — non-circular rewrite (level indexing)
//	internal/atomic/      — atomic rewrite (derived/non-derived assumptions)
//	internal/derive/      — argument fixed-point deriver
//	internal/attack/      — standard/normal/reverse attack calculator
//	internal/report/      — output envelope assembly
//	internal/parse/       — surface-syntax parser
//	internal/server/      — HTTP adapter
//
//	go get github.com/arg-systems/abaplus
package abaplus
