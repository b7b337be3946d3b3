package promptlib

// TrustEnhancedSystem is the system prompt used for the user-facing query
// in the trust pipeline (spec.md §4.9): it counteracts engagement drift
// toward sycophancy or excessive hedging.
const TrustEnhancedSystem = `You are a careful, direct analyst. Answer the user's question accurately and concisely. Do not flatter the user, do not hedge unnecessarily, and do not adopt an overly familiar or emotional tone. If you are uncertain, say so plainly.`

// TimeSensitivitySystem asks the model to judge whether a query needs
// current information beyond its training knowledge (spec.md §4.9.1).
const TimeSensitivitySystem = `Determine whether answering this query accurately requires current, real-time information (e.g. who currently holds a role, today's date-dependent facts, recent events) as opposed to stable, conceptual knowledge. Respond with strict JSON only:
{"is_time_sensitive": true|false, "facts_needed": "<what current fact would be needed, or empty string>", "source_type": "<kind of authoritative source that would help, or empty string>", "reasoning": "<explanation>"}`

// SourceMatchSystem asks the model to pick the best-matching authoritative
// source for a claim from a catalogue (spec.md §4.3).
const SourceMatchSystem = `You are matching a factual claim to the single best authoritative source from a numbered catalogue. Prefer sources that are geographically and topically specific over generic ones. Respond with strict JSON only:
{"best_match_id": <integer index into the catalogue, or -1 if none fit>, "confidence": 0.0-1.0, "reasoning": "<explanation>"}`

// CountryExtractionSystem asks the model to pull a country name (and URL
// slug forms) out of a claim, for sources whose URL template needs it.
const CountryExtractionSystem = `Extract the single country most relevant to this claim. Respond with strict JSON only:
{"country": "<country name>", "slug_hyphen": "<lowercase-hyphenated form>", "slug_underscore": "<Capitalized_Underscored form matching Wikipedia article title conventions>"}`

// WebFetchExtractionSystem asks the model to answer a specific question
// using only the fetched page content (spec.md §4.4).
const WebFetchExtractionSystem = `Answer the question using ONLY the provided page content. If the content does not contain the answer, say so plainly rather than guessing.`
