package models

import "time"

// CompanyProfileInput is the request payload for uploading or replacing
// the company profile. Description, goals and targets are required;
// the remaining fields are optional.
type CompanyProfileInput struct {
	Description string   `json:"description"`
	Goals       []string `json:"goals"`
	Targets     []string `json:"targets"`
	Products    []string `json:"products,omitempty"`
	Industry    string   `json:"industry,omitempty"`
	Values      []string `json:"values,omitempty"`
}

// CompanyProfile is the singleton per-process company record. It owns
// the textual data; VectorCount reflects how many points currently
// represent it in the vector index. It is 0 when embedding was
// unavailable; the text is kept regardless.
type CompanyProfile struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Goals       []string   `json:"goals"`
	Targets     []string   `json:"targets"`
	Products    []string   `json:"products,omitempty"`
	Industry    string     `json:"industry,omitempty"`
	Values      []string   `json:"values,omitempty"`
	UploadedAt  time.Time  `json:"uploadedAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	VectorCount int        `json:"vectorCount"`

	// PointIDs are the ids of the vector points generated for this
	// profile version. They are what UpdateProfile and DeleteProfile
	// retract, so profile updates never touch document vectors.
	PointIDs []string `json:"-"`
}

// Clone returns a deep copy so callers cannot mutate catalog state
// through a returned snapshot.
func (p *CompanyProfile) Clone() *CompanyProfile {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Goals = append([]string(nil), p.Goals...)
	cp.Targets = append([]string(nil), p.Targets...)
	cp.Products = append([]string(nil), p.Products...)
	cp.Values = append([]string(nil), p.Values...)
	cp.PointIDs = append([]string(nil), p.PointIDs...)
	if p.UpdatedAt != nil {
		t := *p.UpdatedAt
		cp.UpdatedAt = &t
	}
	return &cp
}
