// Package data embeds the default ability definitions.
package data

import "embed"

// AbilitiesDir is the directory of Abilities holding the definitions
const AbilitiesDir = "abilities"

//go:embed abilities/*.json
var Abilities embed.FS
