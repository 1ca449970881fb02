package models

// EmotionResult maps an emotion label to a probability-like score in [0,1],
// rounded to 3 decimal places.
type EmotionResult map[string]float64

// TokenResponse is the login response body.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// AnalyzeResponse is the body of a text or image analysis response.
type AnalyzeResponse struct {
	Emotions EmotionResult `json:"emotions"`
}

// SpeechAnalyzeResponse is the body of a speech analysis response.
type SpeechAnalyzeResponse struct {
	TranscribedText string        `json:"transcribed_text"`
	Emotions        EmotionResult `json:"emotions"`
}
