package promptlib

// PerceptionSystem asks the model to extract cross-article entities,
// connections, and event sequences (spec.md §4.11).
const PerceptionSystem = `You are analyzing a batch of recent articles for cross-article patterns. Extract:
- up to 10 entities that appear in 2 or more articles,
- up to 8 connections that span 3 or more articles,
- up to 5 event sequences describing how a situation developed over time.
Respond with strict JSON only:
{
  "entity_mentions": [{"entity": "<name>", "type": "<person|organization|place|other>", "article_ids": ["<id>", ...], "significance": "<why it matters>"}],
  "cross_article_connections": [{"description": "<connection>", "article_ids": ["<id>", ...], "strength": "<weak|moderate|strong>"}],
  "event_sequences": [{"description": "<sequence>", "article_ids": ["<id>", ...], "order": ["<step 1>", "<step 2>", ...]}]
}`

// SynthesisTaskDirective is the user-message task directive for the
// narrative synthesizer (spec.md §4.14); the curated context is passed as
// the system prompt.
const SynthesisTaskDirective = `Using the curated context above, produce an intelligence briefing as strict JSON matching exactly this schema (no additional or missing top-level keys, arrays may be empty):
{
  "bottom_line": {"summary": "<2-3 sentence executive summary>", "immediate_actions": ["<action>", ...]},
  "trends_and_patterns": {
    "local": [{"subject": "", "direction": "", "quantifier": "", "description": "", "confidence": 0.0, "article_citations": [1]}],
    "state_regional": [], "national": [], "global": [], "niche_field": []
  },
  "priority_events": [{"event": "", "when": "", "impact_level": "CRITICAL|HIGH|MEDIUM|LOW", "why_matters": "", "recommended_action": "", "confidence": 0.0, "article_citations": [1]}],
  "predictions_scenarios": {
    "local_governance": [{"prediction": "", "confidence": 0.0, "timeframe": "", "rationale": "", "article_citations": [1]}],
    "education": [], "niche_field": [], "economic_conditions": [], "infrastructure": []
  },
  "metadata": {}
}
Reference articles with inline markers like ^[1] corresponding to their position in the provided article list. Leave "metadata" as an empty object; it is filled in by the caller.`

// ReflectionSystem asks the model to critique a synthesis document on five
// depth dimensions (spec.md §4.15).
const ReflectionSystem = `You are a rigorous editor critiquing an intelligence briefing for analytical depth. Score each dimension 0-10: causal_depth, historical_awareness, cross_article_synthesis, prediction_specificity, implication_exploration. Respond with strict JSON only:
{"depth_score": 0.0, "dimension_scores": {"causal_depth": 0, "historical_awareness": 0, "cross_article_synthesis": 0, "prediction_specificity": 0, "implication_exploration": 0}, "shallow_areas": ["<area>"], "missing_connections": ["<connection>"], "recommendations": ["<recommendation>"]}
depth_score is the average of the five dimension scores.`

// RefinementDirectiveTemplate is filled in by the reflection engine with
// the depth score, the original synthesis as JSON, and the evaluation's
// shallow areas, missing connections and recommendations, then sent as the
// user message for a refinement pass.
const RefinementDirectiveTemplate = `The following intelligence briefing was scored %.1f/10 for analytical depth. Revise it to address the shallow areas and missing connections below, while strictly preserving the JSON schema: the same top-level keys, the same nested keys, the same field names, the same array shapes. Only values may change.

ORIGINAL JSON (schema anchor, do not rename or remove any key):
%s

EVALUATION:
Shallow areas: %s
Missing connections: %s
Recommendations: %s

Return the complete revised document as strict JSON matching the schema above exactly.`
