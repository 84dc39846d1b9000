// internal/app/features/training/catalog.go
package training

// Module is one self-paced lesson with a short quiz at the end.
type Module struct {
	ID       string
	Title    string
	Summary  string
	Sections []Section
	Quiz     []Question
}

// Section is one block of lesson content.
type Section struct {
	Heading string
	Body    string
}

// Question is one multiple-choice quiz question. Answer indexes into
// Choices.
type Question struct {
	Prompt  string
	Choices []string
	Answer  int
}

// Catalog is the ordered lesson list shown on the training page.
var Catalog = []Module{
	{
		ID:      "phishing-basics",
		Title:   "Spotting Phishing",
		Summary: "Recognize the hooks attackers use in email and text messages.",
		Sections: []Section{
			{
				Heading: "Why phishing works",
				Body: "Phishing messages create urgency or curiosity so you act before " +
					"you think. A fake invoice, a package delivery problem, a boss who " +
					"needs gift cards right now. The message looks routine; the ask is not.",
			},
			{
				Heading: "What to check",
				Body: "Look at the actual sender address, not the display name. Hover " +
					"over links before clicking. Be suspicious of any message that asks " +
					"for credentials, payment changes, or secrecy.",
			},
			{
				Heading: "What to do",
				Body: "When in doubt, do not click. Verify the request through a channel " +
					"you already trust, like a known phone number. Report the message " +
					"using your organization's incident reporting procedure.",
			},
		},
		Quiz: []Question{
			{
				Prompt: "An email from \"IT Support\" asks you to confirm your password by replying. What do you do?",
				Choices: []string{
					"Reply with the password, IT already knows it anyway",
					"Report it; legitimate IT never asks for your password",
					"Forward it to a coworker to see if they got it too",
				},
				Answer: 1,
			},
			{
				Prompt: "Which detail most reliably exposes a phishing email?",
				Choices: []string{
					"Spelling mistakes in the body",
					"A colorful company logo",
					"A sender address that does not match the claimed organization",
				},
				Answer: 2,
			},
			{
				Prompt: "A text says your bank account is locked and gives a link. The safest response is:",
				Choices: []string{
					"Tap the link quickly before the account closes",
					"Call the number on the back of your bank card",
					"Reply STOP to opt out",
				},
				Answer: 1,
			},
		},
	},
	{
		ID:      "password-hygiene",
		Title:   "Passwords and MFA",
		Summary: "Strong, unique passwords plus a second factor stop most account takeovers.",
		Sections: []Section{
			{
				Heading: "Unique beats clever",
				Body: "Attackers take passwords leaked from one site and try them " +
					"everywhere. A password you reuse is only as safe as the weakest " +
					"site you used it on. One account, one password.",
			},
			{
				Heading: "Let a manager remember",
				Body: "A password manager generates and stores long random passwords so " +
					"you only memorize one. Length matters more than symbols; a four-word " +
					"passphrase beats P@ssw0rd1 every time.",
			},
			{
				Heading: "Turn on MFA",
				Body: "Multi-factor authentication asks for something you have in " +
					"addition to something you know. Even a stolen password fails " +
					"without the second factor. Enable it on email first; email resets " +
					"everything else.",
			},
		},
		Quiz: []Question{
			{
				Prompt: "Why is reusing the same password across sites risky?",
				Choices: []string{
					"Sites cross-check passwords with each other",
					"One site's breach unlocks every account that shares the password",
					"It is not risky if the password is long",
				},
				Answer: 1,
			},
			{
				Prompt: "Which account should get multi-factor authentication first?",
				Choices: []string{
					"Your primary email account",
					"A streaming service",
					"An online forum",
				},
				Answer: 0,
			},
			{
				Prompt: "Which of these is the strongest password?",
				Choices: []string{
					"P@ssw0rd!",
					"companyname2024",
					"correct-horse-battery-staple style passphrase",
				},
				Answer: 2,
			},
		},
	},
	{
		ID:      "ransomware-response",
		Title:   "Ransomware Readiness",
		Summary: "How ransomware gets in, and what the first hour of a response looks like.",
		Sections: []Section{
			{
				Heading: "How it gets in",
				Body: "Most ransomware arrives through phished credentials, unpatched " +
					"remote access, or a malicious attachment. The encryption you notice " +
					"is the last step; attackers are often inside for days first.",
			},
			{
				Heading: "The first hour",
				Body: "Disconnect the affected machine from the network but do not power " +
					"it off. Notify the incident response contact immediately. Do not " +
					"negotiate or communicate with the attackers yourself.",
			},
			{
				Heading: "Backups are the way out",
				Body: "Organizations that recover quickly have offline or immutable " +
					"backups that the ransomware could not reach, and they have practiced " +
					"restoring from them. Test the restore, not just the backup job.",
			},
		},
		Quiz: []Question{
			{
				Prompt: "You see a ransom note on your screen. What is the right first move?",
				Choices: []string{
					"Power the machine off to stop the encryption",
					"Disconnect it from the network and call the incident contact",
					"Pay quickly while the price is low",
				},
				Answer: 1,
			},
			{
				Prompt: "What makes a backup useful against ransomware?",
				Choices: []string{
					"It runs every night",
					"It lives on a network share next to the data",
					"It is offline or immutable, and restores have been tested",
				},
				Answer: 2,
			},
			{
				Prompt: "Ransomware most often enters an organization through:",
				Choices: []string{
					"Phished credentials or exposed remote access",
					"Infected USB drives left in parking lots",
					"Compromised printers",
				},
				Answer: 0,
			},
		},
	},
}

// ModuleByID returns the catalog module with the given id.
func ModuleByID(id string) (Module, bool) {
	for _, m := range Catalog {
		if m.ID == id {
			return m, true
		}
	}
	return Module{}, false
}
