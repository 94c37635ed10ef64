package models

// DefaultManifests returns the manifests of the reference deployment.
// Paths are relative to the document root.
func DefaultManifests() Manifests {
	return Manifests{
		Images: Manifest{
			"office":           "assets/images/original.png",
			"cam1":             "assets/images/Cam1.png",
			"cam2":             "assets/images/Cam2.png",
			"cam3":             "assets/images/Cam3.png",
			"cam4":             "assets/images/Cam4.png",
			"cam5":             "assets/images/Cam5.png",
			"cam6":             "assets/images/Cam6.png",
			"cam7":             "assets/images/Cam7.png",
			"cam8":             "assets/images/Cam8.png",
			"cam9":             "assets/images/Cam9.png",
			"cam10":            "assets/images/Cam10.png",
			"cam11":            "assets/images/Cam11.png",
			"jumpscare":        "assets/images/jump.png",
			"trumpJumpscare":   "assets/images/jumptrump.png",
			"hawkingJumpscare": "assets/images/scaryhawking.png",
		},
		Sounds: Manifest{
			"ambient":            "assets/sounds/music.ogg",
			"static":             "assets/sounds/Static_sound.ogg",
			"staticLoop":         "assets/sounds/Static_sound.ogg",
			"vents":              "assets/sounds/vents.ogg",
			"ventCrawling":       "assets/sounds/vent-crawling.mp3",
			"jumpscare":          "assets/sounds/jumpcare.ogg",
			"hawkingJumpscare":   "assets/sounds/stephenjumpscare.ogg",
			"blip":               "assets/sounds/Blip.ogg",
			"win":                "assets/sounds/winmusic.ogg",
			"chimes":             "assets/sounds/chimes.ogg",
			"crank1":             "assets/sounds/Crank1.ogg",
			"crank2":             "assets/sounds/Crank2.ogg",
			"ekg":                "assets/sounds/ekg.wav",
			"hawking_shock":      "assets/sounds/hawking_shock.wav",
			"goldenstephenscare": "assets/sounds/goldenstephenscare.ogg",
		},
	}
}
