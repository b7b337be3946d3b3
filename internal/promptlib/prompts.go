// Package promptlib holds the versioned system-prompt strings for every
// LLM-mediated component (spec.md §6.4: "system prompts for each component
// are stable, versioned strings; changing them is a semantic change").
// Constants are grouped one file per component family so a diff touching a
// prompt is easy to spot in review.
package promptlib

// Version is bumped whenever any prompt in this package changes meaning,
// so logs and recorded fixtures can be tied to a specific prompt set.
const Version = "v1"
