// Package wikicrawl crawls an online encyclopedia from seed articles,
// extracts cleaned body text and in-domain article links, and keeps a
// durable catalog of every processed URL so repeated runs never re-fetch
// pages they have already seen.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, gemini/).
package wikicrawl
