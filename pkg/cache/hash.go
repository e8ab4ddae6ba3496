package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/switchpuzzle/pkg/route"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

type canonicalStage struct {
	Name   string   `json:"name"`
	Labels []string `json:"labels"`
	Forms  []string `json:"forms"`
}

type canonicalInput struct {
	Initial string           `json:"initial"`
	Goal    string           `json:"goal"`
	Stages  []canonicalStage `json:"stages"`
}

// InputHash returns a stable hash of everything in the input that can change
// a report: both arrangements, stage names, and every operation's label and
// remapping.
func InputHash(in route.Input) string {
	c := canonicalInput{
		Initial: in.Initial.String(),
		Goal:    in.Goal.String(),
		Stages:  make([]canonicalStage, len(in.Stages)),
	}
	for i, s := range in.Stages {
		cs := canonicalStage{
			Name:   s.Name,
			Labels: make([]string, len(s.Ops)),
			Forms:  make([]string, len(s.Ops)),
		}
		for j, op := range s.Ops {
			cs.Labels[j] = op.Label()
			cs.Forms[j] = op.String()
		}
		c.Stages[i] = cs
	}
	data, _ := json.Marshal(c)
	return Hash(data)
}
