package signature

var presets = map[Template]Data{
	Minimal: {
		Name:     "John Doe",
		Title:    "Software Engineer",
		Company:  "TechCorp",
		Email:    "john@techcorp.com",
		Phone:    "+1 (555) 123-4567",
		Website:  "www.techcorp.com",
		Location: "San Francisco, CA",
		Socials:  Socials{LinkedIn: "", Twitter: "", GitHub: ""},
	},
	Modern: {
		Name:     "Sarah Anderson",
		Title:    "Product Designer",
		Company:  "DesignCraft",
		Email:    "sarah@designcraft.com",
		Phone:    "+1 (555) 234-5678",
		Website:  "www.designcraft.com",
		Location: "New York, NY",
		Socials: Socials{
			LinkedIn: "https://linkedin.com/in/sarahanderson",
			Twitter:  "https://twitter.com/sarahdesigns",
			GitHub:   "",
		},
	},
	Elegant: {
		Name:     "Michael Chen",
		Title:    "Creative Director",
		Company:  "ArtisanStudio",
		Email:    "michael@artisanstudio.com",
		Phone:    "+1 (555) 345-6789",
		Website:  "www.artisanstudio.com",
		Location: "Los Angeles, CA",
		Socials: Socials{
			LinkedIn: "https://linkedin.com/in/michaelchen",
			Twitter:  "https://twitter.com/michaelcreates",
			GitHub:   "",
		},
	},
	Creative: {
		Name:     "Emma Thompson",
		Title:    "Marketing Manager",
		Company:  "CreativeWave",
		Email:    "emma@creativewave.co",
		Phone:    "+1 (555) 456-7890",
		Website:  "www.creativewave.co",
		Location: "Austin, TX",
		Socials: Socials{
			LinkedIn: "",
			Twitter:  "https://twitter.com/emmacreates",
			GitHub:   "",
		},
	},
	Tech: {
		Name:     "Alex Rodriguez",
		Title:    "Senior Developer",
		Company:  "CodeLabs",
		Email:    "alex@codelabs.dev",
		Phone:    "+1 (555) 567-8901",
		Website:  "www.codelabs.dev",
		Location: "Seattle, WA",
		Socials: Socials{
			LinkedIn: "https://linkedin.com/in/alexdev",
			Twitter:  "",
			GitHub:   "https://github.com/alexdev",
		},
	},
}

// Preset returns demo data for a template. Templates without their own preset
// share the tech preset.
func Preset(t Template) Data {
	if d, ok := presets[t]; ok {
		return d.Clone()
	}
	return presets[Tech].Clone()
}

// Default returns the data and style a new workspace starts with.
func Default() (Data, Style) {
	return Preset(Tech), DefaultStyle()
}
