package domain

// Reference data mirrored from the upstream library server. Only the fields
// the loan screens consume are kept.

type Book struct {
	ID    int32  `json:"id"`
	Title string `json:"title"`
}

type User struct {
	ID            int32  `json:"id"`
	Name          string `json:"name"`
	NationalID    string `json:"national_id"`
	Email         string `json:"email,omitempty"`
	SanctionCount int32  `json:"sanction_count"`
}

type Category struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}
