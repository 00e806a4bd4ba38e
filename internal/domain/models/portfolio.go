// internal/domain/models/portfolio.go
package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PortfolioKey is the fixed identifier of the singleton portfolio document.
// One document per deployment; everything the site renders lives in it.
const PortfolioKey = "main"

// FlexID is a record identifier stored as a string. Records created before
// identifier fields existed were written with numeric ids, so decoding
// accepts string, int32, int64, and double BSON values.
type FlexID string

// UnmarshalBSONValue implements bson.ValueUnmarshaler.
func (f *FlexID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeString:
		str, ok := rv.StringValueOK()
		if !ok {
			return fmt.Errorf("flexid: malformed string value")
		}
		*f = FlexID(str)
		return nil
	case bson.TypeInt32:
		*f = FlexID(fmt.Sprintf("%d", rv.Int32()))
		return nil
	case bson.TypeInt64:
		*f = FlexID(fmt.Sprintf("%d", rv.Int64()))
		return nil
	case bson.TypeDouble:
		*f = FlexID(fmt.Sprintf("%d", int64(rv.Double())))
		return nil
	case bson.TypeNull, bson.TypeUndefined:
		*f = ""
		return nil
	default:
		return fmt.Errorf("flexid: cannot decode BSON type %s", t)
	}
}

// String returns the identifier as a plain string.
func (f FlexID) String() string { return string(f) }

// CarouselSlide is one hero slide. Slides have no ids; the slide's position
// in the carousel array is its public identifier.
type CarouselSlide struct {
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	Link        string `bson:"link" json:"link"`
	ButtonText  string `bson:"button_text" json:"buttonText"`
	ImageURL    string `bson:"image_url" json:"imageUrl"`
}

// About is the operator bio block.
type About struct {
	Summary   string   `bson:"summary" json:"summary"`
	FullStory string   `bson:"full_story" json:"fullStory"` // sanitized HTML
	Skills    []string `bson:"skills" json:"skills"`
	PhotoURL  string   `bson:"photo_url" json:"photoUrl"`
}

// ProjectSummary is the teaser block shown above the project list.
type ProjectSummary struct {
	Title      string `bson:"title" json:"title"`
	Paragraph1 string `bson:"paragraph1" json:"paragraph1"`
	Paragraph2 string `bson:"paragraph2" json:"paragraph2"`
	ButtonLink string `bson:"button_link" json:"buttonLink"`
	ImageURL   string `bson:"image_url" json:"image"`
}

// EducationEntry is one education record. ID may be empty on legacy records,
// which are addressed by position instead.
type EducationEntry struct {
	ID          FlexID `bson:"id,omitempty" json:"id,omitempty"`
	Title       string `bson:"title" json:"title"`
	Institution string `bson:"institution" json:"institution"`
	Years       string `bson:"years" json:"years"`
	ImageURL    string `bson:"image_url" json:"imageUrl"`
}

// Certificate is one uploaded certificate (PDF).
type Certificate struct {
	ID     FlexID `bson:"id" json:"id"`
	Title  string `bson:"title" json:"title"`
	Issuer string `bson:"issuer" json:"issuer"`
	PDFURL string `bson:"pdf_url" json:"pdfUrl"`
}

// GalleryPhoto is one gallery image with caption.
type GalleryPhoto struct {
	ID      FlexID `bson:"id" json:"id"`
	URL     string `bson:"url" json:"url"`
	Caption string `bson:"caption" json:"caption"`
}

// Project is one portfolio project with an ordered image list.
type Project struct {
	ID          FlexID   `bson:"id" json:"id"`
	Title       string   `bson:"title" json:"title"`
	Description string   `bson:"description" json:"description"`
	GithubLink  string   `bson:"github_link" json:"githubLink"`
	Images      []string `bson:"images" json:"images"`
}

// FooterInfo is the footer contact block. It may be absent on old documents
// and is created lazily on first footer update.
type FooterInfo struct {
	Name         string `bson:"name" json:"name"`
	Line1        string `bson:"line1" json:"line1"`
	Line2        string `bson:"line2" json:"line2"`
	GithubLink   string `bson:"github_link" json:"githubLink"`
	EmailLink    string `bson:"email_link" json:"emailLink"`
	PhoneLink    string `bson:"phone_link" json:"phoneLink"`
	LinkedinLink string `bson:"linkedin_link" json:"linkedinLink"`
}

// Portfolio is the aggregate root: the entire site content as one document.
// Exactly one instance exists, stored under PortfolioKey.
type Portfolio struct {
	ID  primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Key string             `bson:"key" json:"-"`

	Carousel       []CarouselSlide  `bson:"carousel" json:"carousel"`
	About          About            `bson:"about" json:"about"`
	ProjectSummary ProjectSummary   `bson:"project_summary" json:"projectSummary"`
	Education      []EducationEntry `bson:"education" json:"education"`
	Certificates   []Certificate    `bson:"certificates" json:"certificates"`
	Gallery        []GalleryPhoto   `bson:"gallery" json:"gallery"`
	Projects       []Project        `bson:"projects" json:"projects"`
	FooterInfo     *FooterInfo      `bson:"footer_info,omitempty" json:"footerInfo,omitempty"`

	UpdatedAt time.Time `bson:"updated_at" json:"-"`
}

// Footer returns the footer block, creating it if the document predates one.
func (p *Portfolio) Footer() *FooterInfo {
	if p.FooterInfo == nil {
		p.FooterInfo = &FooterInfo{}
	}
	return p.FooterInfo
}

// DefaultPortfolio returns the seed template used when no document exists yet.
// The operator replaces all of this through the admin panel.
func DefaultPortfolio() *Portfolio {
	return &Portfolio{
		Key: PortfolioKey,
		Carousel: []CarouselSlide{
			{
				Title:       "Welcome",
				Description: "This site is managed through the admin panel.",
				Link:        "#about",
				ButtonText:  "Learn more",
			},
		},
		About: About{
			Summary:   "A short introduction goes here.",
			FullStory: "<p>Tell your full story here. This content is editable by the site operator.</p>",
			Skills:    []string{"Go", "MongoDB"},
		},
		ProjectSummary: ProjectSummary{
			Title:      "Projects",
			Paragraph1: "A summary of recent work.",
			ButtonLink: "#projects",
		},
		Education:    []EducationEntry{},
		Certificates: []Certificate{},
		Gallery:      []GalleryPhoto{},
		Projects:     []Project{},
		FooterInfo: &FooterInfo{
			Name: "Stratafolio",
		},
	}
}
