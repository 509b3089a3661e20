package graphql

import "regexp"

// audioURLPattern matches the first bare audio file URL inside an HTML body.
// Used when an episode has no structured audio field.
var audioURLPattern = regexp.MustCompile(`(?i)https?://[^\s<>"]+\.(?:mp3|m4a|wav|ogg)`)

// ExtractPDFURL resolves the research PDF location. The uploaded media item
// wins over its source URL; papers with neither return "". The external-URL
// custom field is a separate concern kept on the normalized record.
func ExtractPDFURL(node ResearchNode) string {
	if node.Fields == nil || node.Fields.PDFUpload == nil {
		return ""
	}
	pdf := node.Fields.PDFUpload.Node
	if pdf.MediaItemURL != "" {
		return pdf.MediaItemURL
	}
	return pdf.SourceURL
}

// ExtractAudioURL resolves an episode's audio location: the structured
// audio field when present, otherwise the first audio-looking URL in the
// raw HTML body.
func ExtractAudioURL(node EpisodeNode) string {
	if node.Fields != nil && node.Fields.AudioURL != nil && *node.Fields.AudioURL != "" {
		return *node.Fields.AudioURL
	}
	return audioURLPattern.FindString(node.Content)
}

// FeaturedImageURL returns the featured image URL or "".
func FeaturedImageURL(img *Image) string {
	if img == nil {
		return ""
	}
	return img.Node.SourceURL
}

// TermNames flattens a taxonomy connection to its term names.
func TermNames(list *TermList) []string {
	if list == nil || len(list.Nodes) == 0 {
		return []string{}
	}
	names := make([]string, len(list.Nodes))
	for i, t := range list.Nodes {
		names[i] = t.Name
	}
	return names
}
