// Package data embeds the canned offer dataset served by the static
// provider when no upstream token is configured.
package data

import _ "embed"

//go:embed offers.json
var Offers []byte

//go:embed airports.json
var Airports []byte
