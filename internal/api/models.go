package api

// SessionStatus reports whether the server recognises the current session.
type SessionStatus struct {
	Authenticated bool
}

// Profile is the logged-in user's identity.
type Profile struct {
	ID        string `json:"_id"`
	Username  string `json:"username"`
	AvatarRef string `json:"picture"`
}

// Group is a named collection volunteers and requests are scoped to.
type Group struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Volunteer is one delivery slot with its attached requests.
type Volunteer struct {
	ID          string    `json:"_id"`
	Username    string    `json:"username"`
	AvatarRef   string    `json:"picture"`
	Location    string    `json:"location"`
	Time        string    `json:"time"`
	GroupID     string    `json:"groupId"`
	OrderNumber string    `json:"orderNumber"`
	Requests    []Request `json:"requests"`
}

// Request is a food order attached to a delivery slot.
type Request struct {
	VolunteerID string `json:"volunteerId"`
	Text        string `json:"text"`
	Username    string `json:"username"`
	AvatarRef   string `json:"picture"`
}

// VolunteerPayload is the body of a create-volunteer call.
type VolunteerPayload struct {
	Username    string `json:"username"`
	AvatarRef   string `json:"picture"`
	Location    string `json:"location"`
	Time        string `json:"time"`
	GroupID     string `json:"groupId"`
	OrderNumber string `json:"orderNumber"`
}

// RequestPayload is the body of a create-request call.
type RequestPayload struct {
	Username    string `json:"username"`
	AvatarRef   string `json:"picture"`
	VolunteerID string `json:"volunteerId"`
	Text        string `json:"text"`
}

type groupPayload struct {
	GroupName string `json:"groupName"`
}

// envelope wraps request and response bodies as {"data": ...}.
type envelope[T any] struct {
	Data T `json:"data"`
}
