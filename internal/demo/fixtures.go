// Package demo holds the canned responses served when DEMO_MODE is on.
// Nothing here touches Postgres or Redis; the dashboard runs fully offline.
package demo

import "time"

type Job struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	Score          int      `json:"score"`
	Reasoning      string   `json:"reasoning"`
	Status         string   `json:"status"`
	Tags           []string `json:"tags"`
	Notes          string   `json:"notes"`
	URL            string   `json:"url"`
	CreatedAt      string   `json:"createdAt"`
	TailoredResume string   `json:"tailoredResume,omitempty"`
	CoverLetter    string   `json:"coverLetter,omitempty"`
}

func Jobs() []Job {
	now := time.Now().UTC()
	day := 24 * time.Hour
	return []Job{
		{
			ID:        "demo-1",
			Title:     "Senior AI Engineer",
			Company:   "Google DeepMind",
			Score:     9,
			Reasoning: "Perfect match for your Gemini and n8n automation experience. The role requires AI/ML expertise which aligns perfectly with your background.",
			Status:    "Found",
			Tags:      []string{"#AI", "#Remote", "#Startup"},
			URL:       "https://careers.google.com",
			CreatedAt: now.Format(time.RFC3339),
		},
		{
			ID:        "demo-2",
			Title:     "Full Stack Developer - AI Products",
			Company:   "OpenAI",
			Score:     8,
			Reasoning: "Strong fit - your Next.js and TypeScript skills are highly relevant. The AI product focus matches your interests.",
			Status:    "Applied",
			Tags:      []string{"#AI", "#TypeScript", "#Next.js"},
			Notes:     "Submitted application on Monday",
			URL:       "https://openai.com/careers",
			CreatedAt: now.Add(-1 * day).Format(time.RFC3339),
		},
		{
			ID:        "demo-3",
			Title:     "Automation Engineer",
			Company:   "Zapier",
			Score:     9,
			Reasoning: "Excellent match! n8n and automation expertise directly applicable. Remote-first culture aligns with preferences.",
			Status:    "Interviewing",
			Tags:      []string{"#Automation", "#Remote", "#n8n"},
			Notes:     "First round scheduled for Thursday",
			URL:       "https://zapier.com/jobs",
			CreatedAt: now.Add(-2 * day).Format(time.RFC3339),
		},
		{
			ID:        "demo-4",
			Title:     "AI Solutions Architect",
			Company:   "Microsoft",
			Score:     7,
			Reasoning: "Good fit - AI architecture role, though enterprise focus may differ from startup preference.",
			Status:    "Found",
			Tags:      []string{"#AI", "#Enterprise", "#Cloud"},
			URL:       "https://careers.microsoft.com",
			CreatedAt: now.Add(-3 * day).Format(time.RFC3339),
		},
	}
}

func JobByID(id string) (Job, bool) {
	for _, j := range Jobs() {
		if j.ID == id {
			return j, true
		}
	}
	return Job{}, false
}

func Preferences() map[string]any {
	return map[string]any{
		"email": "demo@careerpilot.ai",
		"filters": map[string]any{
			"minScore":  7,
			"locations": []string{"Remote", "San Francisco", "New York"},
			"salaryMin": 100000,
			"salaryMax": 200000,
			"jobTypes":  []string{"Full-time", "Remote", "Contract"},
		},
		"notifications": map[string]any{
			"emailEnabled":     true,
			"dailyDigest":      true,
			"instantAlerts":    true,
			"minScoreForAlert": 8,
		},
		"profile": map[string]any{
			"name":            "Demo User",
			"targetRole":      "AI Engineer",
			"yearsExperience": 5,
		},
	}
}
