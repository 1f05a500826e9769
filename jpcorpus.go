// Package jpcorpus filters web-crawl archive files into a clean Japanese
// text corpus. It reads WARC/WET archives, runs each record through a chain
// of cheap-to-expensive classification gates (blocklist, script statistics,
// declared language, boilerplate structure, n-gram repetition, statistical
// language confirmation), extracts prose from the pages that survive, and
// writes one cleaned-text file per input archive.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, lingua/, sqlite/).
package jpcorpus
