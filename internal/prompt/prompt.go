package prompt

import (
	"fmt"
	"strings"

	"github.com/BerylCAtieno/persona-generator/internal/questionnaire"
)

// schemaBlock is the literal output schema embedded in every prompt. The
// generator's JSON parsing expects exactly these keys; change both together.
const schemaBlock = `Return your response as a JSON object with this structure:
{
  "personas": [
    {
      "persona_name": "Name",
      "persona_type": "Primary/Secondary/Tertiary",
      "demographics": {
        "age_range": "35-55",
        "gender": "Mixed (60% M, 40% F)",
        "location": "Primary: UK, Germany, Middle East",
        "income_level": "200,000+ annual",
        "net_worth": "1M+",
        "education": "University degree or higher",
        "occupation": "Business owners, C-level executives",
        "family_status": "Married/partnered, often with children"
      },
      "psychographics": {
        "values": ["value1", "value2"],
        "motivations": ["motivation1", "motivation2"],
        "lifestyle": "Description",
        "interests": ["interest1", "interest2"]
      },
      "goals": [
        "Goal 1",
        "Goal 2"
      ],
      "challenges": [
        "Challenge 1",
        "Challenge 2"
      ],
      "needs": [
        "Need 1",
        "Need 2"
      ],
      "pain_points": [
        "Pain point 1",
        "Pain point 2"
      ],
      "behavior": {
        "research_style": "Description",
        "decision_making": "Description",
        "communication_preferences": "Description",
        "online_behavior": "Description"
      },
      "quote": "\"A representative quote in their voice\"",
      "key_characteristics": [
        "Characteristic 1",
        "Characteristic 2",
        "Characteristic 3"
      ]
    }
  ]
}

Identify at least 2-3 distinct personas based on the questionnaire data. Be thorough and specific.`

// Build serializes the parsed questionnaire into the generation prompt.
// Pure: the same dataset always produces the same prompt text.
func Build(ds *questionnaire.Dataset) string {
	var b strings.Builder

	b.WriteString("You are an expert user research and UX strategist. Analyze the following questionnaire data and create comprehensive User Personas.\n\n")

	b.WriteString(fmt.Sprintf("CLIENT: %s\n", ds.ClientInfo.ClientName()))
	b.WriteString(fmt.Sprintf("PRODUCT: %s\n\n", ds.ClientInfo.ProductName()))

	b.WriteString("QUESTIONNAIRE DATA:\n\n")
	for _, qa := range ds.AllQA {
		b.WriteString(fmt.Sprintf("Section: %s\n", qa.Section))
		b.WriteString(fmt.Sprintf("Q: %s\n", qa.Question))
		b.WriteString(fmt.Sprintf("A: %s\n\n", qa.Answer))
	}

	b.WriteString("Based on this questionnaire, create detailed user personas that represent the ideal clients/users for this product/service.\n\n")
	b.WriteString(`For each persona, provide:
1. Persona Name - A memorable, descriptive name
2. Persona Type - Primary, Secondary, or Tertiary
3. Demographics - Age range, gender, location, income level, education, occupation
4. Psychographics - Values, motivations, lifestyle, interests
5. Goals - What they want to achieve
6. Challenges - Problems they face
7. Needs - What they need from the product/service
8. Pain Points - Specific frustrations
9. Behavior - How they behave, research, make decisions
10. Quote - A representative quote in their voice
11. Key Characteristics - 5-7 bullet points summarizing them

`)
	b.WriteString(schemaBlock)

	return b.String()
}
