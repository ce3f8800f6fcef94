package model

// Person is a core team or board member.
type Person struct {
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
	Img      string `json:"img,omitempty"`
	Fallback string `json:"fallback,omitempty"`
}

// Board is the boardMembers.json document.
type Board struct {
	Chairman *Person  `json:"chairman,omitempty"`
	Members  []Person `json:"members"`
}

// Vendor is a community vendor listing.
type Vendor struct {
	Name  string `json:"name"`
	Cat   string `json:"cat"`
	URL   string `json:"url,omitempty"`
	Logo  string `json:"logo,omitempty"`
	Blurb string `json:"blurb,omitempty"`
}

// GalleryItem is one slide of the gallery marquee.
type GalleryItem struct {
	Src      string `json:"src"`
	Label    string `json:"label"`
	Fallback string `json:"fallback,omitempty"`
}
