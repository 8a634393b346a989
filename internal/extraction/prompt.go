package extraction

import "fmt"

const systemPrompt = "You are an expert on Indian government schemes. " +
	"Extract scheme information into strict JSON."

const userPromptTemplate = `You will be given text describing one or more Indian government schemes.

Return ONLY a JSON array (no extra text). Each scheme object must have:
- scheme_name (string)
- benefits (string)
- criteria (object) with eligibility rules

Criteria rules (be consistent):
1) Use *_min and *_max for numeric ranges (age_min, age_max, income_max, disability_percentage_min, etc.)
2) Use *_required booleans for yes/no requirements (disability_required, widow_required, student_required, etc.)
3) Use *_allowed arrays for categorical constraints:
   gender_allowed, category_allowed, residence_type_allowed, state_allowed, district_allowed, occupation_allowed
If the document says "only women", use gender_allowed:["Female"].
If it says "BPL only", use bpl_required:true.
If it says "SC/ST", use category_allowed:["SC","ST"].

Text:
%s
`

// userPrompt embeds one chunk of document text.
func userPrompt(text string) string {
	return fmt.Sprintf(userPromptTemplate, text)
}
