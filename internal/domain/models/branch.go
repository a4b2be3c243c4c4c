package models

// Branch is a retail location holding its own stock quantities.
type Branch struct {
	ID      int64  `bson:"_id" json:"id"`
	Name    string `bson:"name" json:"name"`
	Address string `bson:"address" json:"address"`
	Phone   string `bson:"phone" json:"phone,omitempty"`
	State   bool   `bson:"state" json:"state"`
}

// BranchInput is the create/update payload for branches. State defaults to
// true on create when omitted.
type BranchInput struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
	Phone   string `json:"phone"`
	State   *bool  `json:"state"`
}
