package advisor

import (
	"context"

	"github.com/rhinoback/rhinoback/internal/core"
	"github.com/rhinoback/rhinoback/internal/domain"
)

const securityPrompt = `You are a cybersecurity expert. Analyze the project requirements and provide essential security recommendations.

CRITICAL: Respond with ONLY valid JSON in the exact format below.

**REQUIRED JSON STRUCTURE:**
{
  "recommendations": [
    {
      "title": "Specific security measure",
      "description": "How to implement and why it's needed for security",
      "priority": "High|Medium|Low",
      "category": "authentication|authorization|data|infrastructure"
    }
  ],
  "success": true
}

**REQUIREMENTS:**
1. Generate 4-6 security recommendations relevant to the project
2. Each recommendation must be specific and actionable
3. Provide clear implementation guidance and security benefits
4. Set appropriate priority levels based on security impact
5. Cover different security areas: auth, data protection, infrastructure
6. Focus on practical, implementable security measures

**SECURITY CATEGORIES:**
- authentication: User login, password policies, MFA
- authorization: Role-based access, permissions, API security
- data: Encryption, data privacy, secure storage
- infrastructure: Network security, server hardening, monitoring

Return ONLY the JSON object with no additional formatting or text.`

var securityNormalizer = normalizer[[]SecurityRecommendation]{
	name:        "security recommendations",
	prompt:      securityPrompt,
	schema:      "security",
	temperature: 0.2,
	maxTokens:   2000,
	empty:       func() []SecurityRecommendation { return []SecurityRecommendation{} },
	fallback:    func(Input) []SecurityRecommendation { return SecurityFallback() },
	decode: func(raw []byte) ([]SecurityRecommendation, error) {
		resp, err := decodeJSON[struct {
			Recommendations []SecurityRecommendation `json:"recommendations"`
		}](raw)
		if err != nil {
			return nil, err
		}
		recs := nonNil(resp.Recommendations)
		for i := range recs {
			r := &recs[i]
			r.Title = orDefault(r.Title, "General Security Measure")
			r.Description = orDefault(r.Description, "Security implementation details not specified")
			r.Priority = core.NormalizeLevel(r.Priority, domain.LevelMedium)
			r.Category = orDefault(r.Category, "authentication")
		}
		return recs, nil
	},
}

// SecurityRecommendations asks for security measures for the described project.
func (a *Advisor) SecurityRecommendations(ctx context.Context, in Input) Outcome[[]SecurityRecommendation] {
	return run(ctx, a.client, securityNormalizer, in)
}

// SecurityFallback is the canned result used when the model cannot be used.
func SecurityFallback() []SecurityRecommendation {
	return []SecurityRecommendation{
		{
			Title:       "Implement Strong Authentication",
			Description: "Use secure password policies and consider implementing multi-factor authentication for enhanced security.",
			Priority:    domain.LevelHigh,
			Category:    "authentication",
		},
		{
			Title:       "Role-Based Access Control",
			Description: "Implement proper authorization system with role-based permissions to control user access.",
			Priority:    domain.LevelHigh,
			Category:    "authorization",
		},
		{
			Title:       "Data Encryption",
			Description: "Encrypt sensitive data both at rest and in transit using industry-standard encryption.",
			Priority:    domain.LevelHigh,
			Category:    "data",
		},
		{
			Title:       "Security Monitoring",
			Description: "Set up comprehensive logging and monitoring to detect and respond to security incidents.",
			Priority:    domain.LevelMedium,
			Category:    "infrastructure",
		},
	}
}
