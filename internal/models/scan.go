package models

import "time"

// Diagnosis is the normalized result of one AI analysis. Every field is
// populated once it leaves the parser.
type Diagnosis struct {
	DiseaseDetected string   `bson:"disease_detected" json:"disease_detected"`
	Confidence      string   `bson:"confidence" json:"confidence"`
	Severity        string   `bson:"severity" json:"severity"`
	Treatment       string   `bson:"treatment" json:"treatment"`
	Recommendations []string `bson:"recommendations" json:"recommendations"`
}

type Scan struct {
	ID          string    `bson:"id" json:"id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	ImageBase64 string    `bson:"image_base64" json:"image_base64"`
	Diagnosis   `bson:",inline"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
