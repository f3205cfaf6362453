package models

// Format describes one stream format from the backend's catalogue. A codec
// value of "none" or empty means that track is absent from the stream.
type Format struct {
	ID         string  `json:"format_id"`
	Ext        string  `json:"ext"`
	VideoCodec string  `json:"vcodec"`
	AudioCodec string  `json:"acodec"`
	Height     int     `json:"height"`
	FPS        float64 `json:"fps"`
	Bitrate    float64 `json:"tbr"`
	AudioRate  float64 `json:"abr"`
	SampleRate int     `json:"asr"`
}

// HasVideo reports whether the format carries a video track.
func (f Format) HasVideo() bool {
	return f.VideoCodec != "" && f.VideoCodec != "none"
}

// HasAudio reports whether the format carries an audio track.
func (f Format) HasAudio() bool {
	return f.AudioCodec != "" && f.AudioCodec != "none"
}

// Progressive reports whether both tracks are present in one stream.
func (f Format) Progressive() bool {
	return f.HasVideo() && f.HasAudio()
}

// Selection is the resolver's output: a single progressive id, a
// "video+audio" split pair, or nothing viable.
type Selection struct {
	VideoID string
	AudioID string
}

// None reports whether no viable selection was found.
func (s Selection) None() bool {
	return s.VideoID == "" && s.AudioID == ""
}

// Split reports whether the selection is a video-only/audio-only pair
// requiring a merge step.
func (s Selection) Split() bool {
	return s.VideoID != "" && s.AudioID != ""
}

// String renders the selection as a backend format selector.
func (s Selection) String() string {
	switch {
	case s.Split():
		return s.VideoID + "+" + s.AudioID
	case s.VideoID != "":
		return s.VideoID
	case s.AudioID != "":
		return s.AudioID
	}
	return ""
}
