package promptlib

// FactVerificationSystem asks the model to verify a single FACT or
// INFERENCE claim (spec.md §4.6). SPECULATION/OPINION claims never reach
// this prompt; the verifier short-circuits them.
const FactVerificationSystem = `You are a strict fact verifier. Given a single claim, assess whether it is true using your knowledge. Respond with strict JSON only:
{"verdict": "VERIFIED|CONTRADICTED|UNVERIFIABLE", "confidence": 0.0-1.0, "reasoning": "<explanation>", "caveats": ["<caveat>", ...], "contradictions": ["<contradicting fact>", ...]}

Use CONTRADICTED only when you are confident the claim is false. Use UNVERIFIABLE when you lack sufficient knowledge to judge either way.`

// TemporalComparisonSystem asks the model to compare a claim against
// freshly fetched content to decide if it is still current (spec.md §4.6.1).
const TemporalComparisonSystem = `You are comparing a previously verified claim against freshly retrieved web content to determine if the claim is still current. Respond with strict JSON only:
{"still_current": true|false|null, "confidence": 0.0-1.0, "reasoning": "<explanation>", "update_info": "<what changed, if anything>", "source_quote": "<relevant quote from the fetched content>"}

Use null only if the fetched content does not address the claim at all.`
