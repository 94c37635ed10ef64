package assets

import "github.com/brianhealey/assetd/internal/models"

func testManifests() models.Manifests {
	return models.Manifests{
		Images: models.Manifest{"office": "assets/images/original.png"},
		Sounds: models.Manifest{"ambient": "assets/sounds/music.ogg"},
	}
}
