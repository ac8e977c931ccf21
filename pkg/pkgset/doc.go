// Package pkgset turns package declarations into backend-tagged groups.
//
// A Builder collects names and optional allow-lists for hostname,
// architecture and OS. Build evaluates the allow-lists once against the
// live environment: a list that is set and does not contain the live value
// suppresses the whole declaration, while an unset list imposes nothing.
//
//	pkgset.New("neovim", "ripgrep").OnOS("linux").OnArches("x86_64")
//	pkgset.New("work-vpn").OnHost("laptop").WithBackend(backend.Paru())
//
// Anything implementing Declaration can be handed to a session: a Builder,
// a single Name, a Names slice, or a Declarations batch mixing all three.
package pkgset
