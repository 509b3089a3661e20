package domain

import (
	"encoding/base64"
	"strings"
)

// IdentifierKind distinguishes opaque CMS node IDs from human slugs.
type IdentifierKind string

const (
	// KindNodeID is an opaque relay-style node identifier ("cG9zdDo4MA==").
	KindNodeID IdentifierKind = "ID"
	// KindSlug is a human, URL-safe slug.
	KindSlug IdentifierKind = "SLUG"
)

// Identifier tags a lookup value with how the CMS should interpret it.
// Callers that know what they hold should construct one explicitly instead
// of relying on DetectIdentifier.
type Identifier struct {
	Kind  IdentifierKind
	Value string
}

// NodeID builds an identifier for an opaque CMS node ID.
func NodeID(v string) Identifier { return Identifier{Kind: KindNodeID, Value: v} }

// Slug builds an identifier for a slug.
func Slug(v string) Identifier { return Identifier{Kind: KindSlug, Value: v} }

// DetectIdentifier classifies a bare string at the API boundary. CMS node
// IDs are base64 and decode to "type:id"; everything else is a slug. A slug
// that happens to be valid base64 containing a colon would be misclassified,
// so this is a convenience for route parameters only.
func DetectIdentifier(s string) Identifier {
	if looksLikeNodeID(s) {
		return NodeID(s)
	}
	return Slug(s)
}

func looksLikeNodeID(s string) bool {
	if !strings.Contains(s, "=") {
		return false
	}
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return false
	}
	return strings.Contains(string(decoded), ":")
}

// DecodeNodeID extracts the database ID from a relay node ID, returning the
// input unchanged when it does not decode to "type:id".
func DecodeNodeID(nodeID string) string {
	decoded, err := base64.StdEncoding.DecodeString(nodeID)
	if err != nil {
		return nodeID
	}
	_, id, ok := strings.Cut(string(decoded), ":")
	if !ok || id == "" {
		return nodeID
	}
	return id
}
