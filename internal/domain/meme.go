package domain

import (
	"fmt"
	"strings"
	"time"
)

// Meme is the core content entity: a captioned image plus its social and
// minting metadata. The full collection is the unit of persistence.
type Meme struct {
	ID         string `json:"id"`
	ImageURL   string `json:"imageUrl"`
	Caption    string `json:"caption"`
	Score      int    `json:"score"`
	Minted     bool   `json:"minted"`
	ShareCount int    `json:"shareCount,omitempty"`
	Prompt     string `json:"prompt,omitempty"`
	Watermark  string `json:"watermark,omitempty"`
	IpfsCid    string `json:"ipfsCid,omitempty"`
}

// NewMemeID builds a collection-unique identifier from a creation instant.
// Uniqueness holds per session, not across clock skew.
func NewMemeID(now time.Time) string {
	return fmt.Sprintf("meme-%d", now.UnixMilli())
}

// JoinCaption derives the displayed caption from the two caption inputs.
func JoinCaption(topText, bottomText string) string {
	return strings.TrimSpace(topText + " " + bottomText)
}

// ShortID returns the last four characters of a meme id, used in
// user-facing notifications.
func ShortID(id string) string {
	if len(id) <= 4 {
		return id
	}
	return id[len(id)-4:]
}

// Comment belongs to a meme via MemeID. The link is not enforced
// structurally: deleting a meme leaves its comments behind under the old
// storage key.
type Comment struct {
	ID        string `json:"id"`
	MemeID    string `json:"memeId"`
	Author    string `json:"author"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"` // unix millis
}
