// Package authstore provides persistent storage back ends for the launcher
// credential.
//
// Two backends with different security tradeoffs:
//   - File: plain JSON under the launcher's data directory, atomic writes
//     and owner-only permissions
//   - Keyring: OS-native credential storage (macOS Keychain, Windows
//     Credential Manager, Linux Secret Service)
//
// Both store the same JSON encoding of auth.Token and satisfy auth.Store.
package authstore
