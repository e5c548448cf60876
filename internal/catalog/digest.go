package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/tickstream-hq/tardis-harvester/pkg/tardis"
)

// instrumentDigest produces a stable content hash for an instrument record.
// Two records digest equal exactly when their JSON forms are identical, which
// is what "unchanged since last harvest" means here.
func instrumentDigest(info tardis.InstrumentInfo) (string, error) {
	payload, err := json.Marshal(info)
	if err != nil {
		return "", fmt.Errorf("marshal instrument %s: %w", info.ID, err)
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
