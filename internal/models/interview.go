package models

// Interview is a persisted interview definition. Created either by the
// generation endpoint or at the end of a "generate" voice session.
type Interview struct {
	ID         string   `json:"id" bson:"_id"`
	Role       string   `json:"role" bson:"role"`
	Level      string   `json:"level" bson:"level"`
	Type       string   `json:"type" bson:"type"`
	Techstack  []string `json:"techstack" bson:"techstack"`
	Questions  []string `json:"questions" bson:"questions"`
	UserID     string   `json:"userId" bson:"userId"`
	Finalized  bool     `json:"finalized" bson:"finalized"`
	CoverImage string   `json:"coverImage" bson:"coverImage"`
	CreatedAt  string   `json:"createdAt" bson:"createdAt"`
}
