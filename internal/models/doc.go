// Package models defines domain entities for the tidalq link dispatcher.
//
// The package contains three categories of types:
//
// 1. Classification types: the output of URL classification
//   - [LinkKind] / [LinkRef] : which catalog object a link identifies
//
// 2. Catalog DTOs: normalized descriptors produced by the resolver
//   - [Track] : song metadata with optional direct stream URI
//   - [Collection] : a playlist or album with its ordered track listing
//
// 3. Session and result types
//   - [Credentials] : long-lived OAuth material persisted in the session store
//   - [BatchResult] : per-dispatch queuing summary
//
// All types are plain values. Field normalization (item wrappers, artist
// arrays, name-vs-title) is the resolver adapter's job; nothing downstream
// performs duck typing on raw API payloads.
package models
