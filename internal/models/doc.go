// Package models defines the core domain models for Stokvela.
//
// # Models
//
//   - User: registered account, authenticated by phone number + PIN
//   - Stokvel: a group savings pool with members, rules and an invite code
//   - Member: one participant's standing within a stokvel
//   - Vote: a group decision with per-member ballots
//   - Transaction: a synthesized record of a recorded contribution
//   - Module / Progress: financial literacy content and per-user tracking
//
// # Design Principles
//
//  1. **Avoid circular references**: relationships use ID fields, never pointers
//  2. **Wire-shaped**: JSON tags match the mobile client's field names exactly
//  3. **No behavior**: mutation rules live in the storage and service layers
package models
