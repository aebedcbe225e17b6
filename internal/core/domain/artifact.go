package domain

import (
	"regexp"
	"time"
	"unicode/utf8"
)

// Artifact is a server-held saved answer file as listed by the service.
type Artifact struct {
	Name       string `json:"nome"`
	SizeBytes  int64  `json:"tamanho"`
	CreatedAt  string `json:"data_criacao"`
	ModifiedAt string `json:"data_modificacao"`
}

// ModifiedTime parses ModifiedAt. Unparseable values yield the zero time.
func (a Artifact) ModifiedTime() time.Time {
	for _, layout := range []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	} {
		if t, err := time.Parse(layout, a.ModifiedAt); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ArtifactPlaceholderQuestion is used when an artifact name carries no label.
const ArtifactPlaceholderQuestion = "Consulta salva automaticamente"

// ArtifactPlaceholderBody is the answer text shown for artifact entries.
const ArtifactPlaceholderBody = "Arquivo TXT salvo automaticamente"

// artifactLabelMaxRunes is the label length kept before the ellipsis.
const artifactLabelMaxRunes = 50

var artifactNamePattern = regexp.MustCompile(`\(([^)]+)\)\.\w+`)

// QuestionFromArtifactName derives display question text from an artifact
// name of the form "(<label>).ext", where "_" separates words. The label is
// truncated to 50 characters and an ellipsis is always appended. Names that
// do not match yield ArtifactPlaceholderQuestion.
func QuestionFromArtifactName(name string) string {
	m := artifactNamePattern.FindStringSubmatch(name)
	if m == nil {
		return ArtifactPlaceholderQuestion
	}

	label := []rune(replaceUnderscores(m[1]))
	if len(label) > artifactLabelMaxRunes {
		label = label[:artifactLabelMaxRunes]
	}
	return string(label) + "..."
}

func replaceUnderscores(s string) string {
	out := make([]rune, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		if r == '_' {
			r = ' '
		}
		out = append(out, r)
	}
	return string(out)
}
