package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Sources: SourcesConfig{
			Browser: BrowserConfig{
				Enabled:     true,
				ChromePath:  "~/.config/google-chrome/Default/History",
				EdgePath:    "~/.config/microsoft-edge/Default/History",
				FirefoxPath: "~/.mozilla/firefox",
			},
			Git: GitConfig{
				Enabled:      true,
				ProjectDirs:  []string{"~/Projects"},
				AuthorEmails: []string{},
			},
			AIChats: AIChatsConfig{
				Enabled:        true,
				ChatGPTExport:  "",
				CopilotEnabled: false,
			},
		},
		Categorize: CategorizeConfig{
			WorkKeywords:          []string{"github", "stackoverflow", "docs", "api"},
			LearningKeywords:      []string{"tutorial", "course", "learn", "guide"},
			EntertainmentKeywords: []string{"youtube", "netflix", "game", "social"},
		},
		Privacy: PrivacyConfig{
			ExcludeTerms: DefaultExcludeTerms(),
		},
		Output: OutputConfig{
			Dir:                   "outputs",
			IncludeTimeline:       true,
			IncludeStatistics:     true,
			MaxEntriesPerCategory: 10,
		},
	}
}
