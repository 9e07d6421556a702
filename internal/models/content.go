package models

// Endpoints of the CMS that carry likeable content. Comment targets are
// restricted to the same set.
const (
	EndpointExhibitions = "exhibitions"
	EndpointWorkshops   = "workshops"
	EndpointCreators    = "creators"
)

// ValidTarget reports whether endpoint may receive likes or comments.
func ValidTarget(endpoint string) bool {
	return endpoint == EndpointExhibitions || endpoint == EndpointWorkshops
}

// Image is a CMS-hosted asset reference.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height,omitempty"`
	Width  int    `json:"width,omitempty"`
}

// Exhibition is a festival exhibition entry as stored in the CMS.
type Exhibition struct {
	ID                   string  `json:"id"`
	Title                string  `json:"title"`
	Creator              string  `json:"creator"`
	CreatorGroup         string  `json:"creatorGroup"`
	Image                Image   `json:"image"`
	Images               []Image `json:"images"`
	Category             string  `json:"category"`
	IsCurrentlyDisplayed bool    `json:"isCurrentlyDisplayed"`
	Description          string  `json:"description"`
	LongDescription      string  `json:"longDescription"`
	Location             string  `json:"location"`
	DisplayPeriod        string  `json:"displayPeriod"`
	OpeningHours         string  `json:"openingHours"`
	Tags                 string  `json:"tags"`
	Likes                int     `json:"likes"`
	CreatedAt            string  `json:"createdAt"`
}

// Workshop is a hands-on session entry as stored in the CMS.
type Workshop struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Instructor   string `json:"instructor"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Duration     int    `json:"duration"`
	Location     string `json:"location"`
	Difficulty   string `json:"difficulty"`
	Description  string `json:"description"`
	Materials    string `json:"materials"`
	Requirements string `json:"requirements"`
	Likes        int    `json:"likes"`
	CreatedAt    string `json:"createdAt"`
}

// Creator is an individual artist or group profile.
type Creator struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Type            string       `json:"type"`
	Description     string       `json:"description"`
	LongDescription string       `json:"longDescription"`
	Specialties     string       `json:"specialties"`
	MemberCount     int          `json:"memberCount"`
	EstablishedYear int          `json:"establishedYear"`
	Contact         string       `json:"contact"`
	Website         string       `json:"website"`
	SocialMedia     string       `json:"socialMedia"`
	Exhibitions     []Exhibition `json:"exhibitions"`
	UpcomingEvents  []Workshop   `json:"upcomingEvents"`
	Achievements    string       `json:"achievements"`
}
