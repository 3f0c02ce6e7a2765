package graph

import "encoding/json"

// Record is one message as returned by the conversation messages edge.
type Record struct {
	ID          string
	SenderID    string
	SenderName  string
	Text        string
	CreatedTime string
}

type recordJSON struct {
	ID          string `json:"id,omitempty"`
	Message     string `json:"message"`
	CreatedTime string `json:"created_time,omitempty"`
	From        struct {
		ID   string `json:"id"`
		Name string `json:"name,omitempty"`
	} `json:"from"`
}

func (r *Record) UnmarshalJSON(b []byte) error {
	var raw recordJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*r = Record{
		ID:          raw.ID,
		SenderID:    raw.From.ID,
		SenderName:  raw.From.Name,
		Text:        raw.Message,
		CreatedTime: raw.CreatedTime,
	}
	return nil
}

func (r Record) MarshalJSON() ([]byte, error) {
	raw := recordJSON{ID: r.ID, Message: r.Text, CreatedTime: r.CreatedTime}
	raw.From.ID = r.SenderID
	raw.From.Name = r.SenderName
	return json.Marshal(raw)
}

type Cursors struct {
	Before string `json:"before,omitempty"`
	After  string `json:"after,omitempty"`
}

type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next,omitempty"`
}

// Page is one decoded response of the messages edge.
type Page struct {
	Data   []Record
	Paging Paging
}

// pageResponse keeps data as a pointer so a missing "data" key can be told apart from an empty list.
type pageResponse struct {
	Data   *[]Record `json:"data"`
	Paging Paging    `json:"paging"`
}

type conversationsResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

type Platform string

const (
	PlatformMessenger Platform = "messenger"
	PlatformInstagram Platform = "instagram"
)

var Platforms = []Platform{PlatformMessenger, PlatformInstagram}
