package api

// Sheep is the current number of sheep
type Sheep struct {
	Count int64 `json:"nbsheep" jsonschema:"required" format:"int64"`
}
