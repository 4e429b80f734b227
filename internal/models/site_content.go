// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// WebsiteContent is the static shape of the single site content document.
// Every page reads its copy, links and imagery from here; properties and
// construction projects live in their own collections. JSON keys match
// the stored document exactly.
type WebsiteContent struct {
	Meta                      MetaSection               `json:"meta"`
	Header                    HeaderSection             `json:"header"`
	Footer                    FooterSection             `json:"footer"`
	HomePage                  HomePage                  `json:"homePage"`
	AboutUsPage               AboutUsPage               `json:"aboutUsPage"`
	ContactPage               ContactPage               `json:"contactPage"`
	BuyHomesPage              ListingPage               `json:"buyHomesPage"`
	RentPropertiesPage        ListingPage               `json:"rentPropertiesPage"`
	ConstructionPortfolioPage ConstructionPortfolioPage `json:"constructionPortfolioPage"`
}

// MetaSection holds the document title and meta description.
type MetaSection struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// NavLink is one header navigation entry. URL, when set, wins over Page.
type NavLink struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Page  string `json:"page,omitempty"`
	URL   string `json:"url,omitempty"`
}

// FooterLink is a labelled footer link.
type FooterLink struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

// SocialLink is a footer social network icon link.
type SocialLink struct {
	ID   string `json:"id"`
	Icon string `json:"icon"`
	URL  string `json:"url"`
}

// IconCard is the id/icon/title/description record used by most
// repeating card lists on the site.
type IconCard struct {
	ID          string `json:"id"`
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type HeaderSection struct {
	LogoText                  string    `json:"logoText"`
	LogoSVG                   string    `json:"logoSvg"`
	LogoImageURL              string    `json:"logoImageUrl,omitempty"`
	NavLinks                  []NavLink `json:"navLinks"`
	ContactWhatsAppButtonText string    `json:"contactWhatsAppButtonText"`
	ContactWhatsAppButtonLink string    `json:"contactWhatsAppButtonLink,omitempty"`
	SearchPlaceholder         string    `json:"searchPlaceholder"`
	WhatsappChatIcon          string    `json:"whatsappChatIcon"`
}

type FooterSection struct {
	LogoText                string       `json:"logoText"`
	LogoSVG                 string       `json:"logoSvg"`
	LogoImageURL            string       `json:"logoImageUrl"`
	Description             string       `json:"description"`
	ServicesTitle           string       `json:"servicesTitle"`
	ServicesLinks           []FooterLink `json:"servicesLinks"`
	CompanyTitle            string       `json:"companyTitle"`
	CompanyLinks            []FooterLink `json:"companyLinks"`
	NewsletterTitle         string       `json:"newsletterTitle"`
	NewsletterDescription   string       `json:"newsletterDescription"`
	NewsletterPlaceholder   string       `json:"newsletterPlaceholder"`
	NewsletterButtonIcon    string       `json:"newsletterButtonIcon"`
	CopyrightText           string       `json:"copyrightText"`
	SocialLinks             []SocialLink `json:"socialLinks"`
	WhatsappFloatingIconSVG string       `json:"whatsappFloatingIconSvg"`
	WhatsappFloatingLink    string       `json:"whatsappFloatingLink"`
}

// --- Home page ---

type HomePage struct {
	Hero               HomeHero           `json:"hero"`
	Stats              HomeStats          `json:"stats"`
	Services           HomeServices       `json:"services"`
	FeaturedProperties FeaturedProperties `json:"featuredProperties"`
	Commitment         Commitment         `json:"commitment"`
	ContactSection     ContactSection     `json:"contactSection"`
}

type HomeHero struct {
	Tagline             string `json:"tagline"`
	Title               string `json:"title"`
	Description         string `json:"description"`
	PrimaryButtonText   string `json:"primaryButtonText"`
	PrimaryButtonLink   string `json:"primaryButtonLink"`
	SecondaryButtonText string `json:"secondaryButtonText"`
	SecondaryButtonIcon string `json:"secondaryButtonIcon"`
	SecondaryButtonLink string `json:"secondaryButtonLink"`
	BackgroundImage     string `json:"backgroundImage"`
}

// StatItem is one headline number on the home page.
type StatItem struct {
	Tag         string `json:"tag"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

type HomeStats struct {
	Experience    StatItem `json:"experience"`
	Portfolio     StatItem `json:"portfolio"`
	Craftsmanship StatItem `json:"craftsmanship"`
}

// ServiceCard is one tile in the home page services strip.
type ServiceCard struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Tag             string `json:"tag"`
	BackgroundImage string `json:"backgroundImage"`
}

type HomeServices struct {
	SectionTitle string        `json:"sectionTitle"`
	ServicesList []ServiceCard `json:"servicesList"`
}

type FeaturedProperties struct {
	Tagline           string `json:"tagline"`
	SectionTitle      string `json:"sectionTitle"`
	ViewAllButtonText string `json:"viewAllButtonText"`
	ViewAllButtonIcon string `json:"viewAllButtonIcon"`
	ViewAllButtonLink string `json:"viewAllButtonLink"`
}

type Commitment struct {
	Tagline      string     `json:"tagline"`
	SectionTitle string     `json:"sectionTitle"`
	Description  string     `json:"description"`
	Items        []IconCard `json:"items"`
}

type ContactSection struct {
	Heading        string         `json:"heading"`
	Subheading     string         `json:"subheading"`
	WhatsappCard   WhatsappCard   `json:"whatsappCard"`
	CallCard       CallCard       `json:"callCard"`
	OfficeInfoCard OfficeInfoCard `json:"officeInfoCard"`
	EnquiryForm    EnquiryForm    `json:"enquiryForm"`
}

type WhatsappCard struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	ButtonText  string `json:"buttonText"`
	ButtonIcon  string `json:"buttonIcon"`
	ButtonLink  string `json:"buttonLink"`
}

type CallCard struct {
	Title       string `json:"title"`
	PhoneNumber string `json:"phoneNumber"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	ButtonText  string `json:"buttonText"`
	ButtonIcon  string `json:"buttonIcon"`
	ButtonLink  string `json:"buttonLink"`
}

type OfficeInfoCard struct {
	Title               string `json:"title"`
	Icon                string `json:"icon"`
	AddressLine1        string `json:"addressLine1"`
	AddressLine2        string `json:"addressLine2"`
	AddressLine3        string `json:"addressLine3"`
	ScheduleMonSat      string `json:"scheduleMonSat"`
	ScheduleHoursMonSat string `json:"scheduleHoursMonSat"`
	ScheduleSunday      string `json:"scheduleSunday"`
	ScheduleHoursSunday string `json:"scheduleHoursSunday"`
}

// SelectOption is a value/label pair for form dropdowns.
type SelectOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type EnquiryForm struct {
	Title                  string         `json:"title"`
	FullNameLabel          string         `json:"fullNameLabel"`
	FullNamePlaceholder    string         `json:"fullNamePlaceholder"`
	PhoneNumberLabel       string         `json:"phoneNumberLabel"`
	PhoneNumberPlaceholder string         `json:"phoneNumberPlaceholder"`
	EnquiryTypeLabel       string         `json:"enquiryTypeLabel"`
	EnquiryTypeOptions     []SelectOption `json:"enquiryTypeOptions"`
	MessageLabel           string         `json:"messageLabel"`
	MessagePlaceholder     string         `json:"messagePlaceholder"`
	SubmitButtonText       string         `json:"submitButtonText"`
	SubmitButtonIcon       string         `json:"submitButtonIcon"`
}

// --- About us page ---

type AboutUsPage struct {
	Hero            AboutHero       `json:"hero"`
	OurStory        OurStory        `json:"ourStory"`
	WhatWeDo        WhatWeDo        `json:"whatWeDo"`
	OurValues       OurValues       `json:"ourValues"`
	LocalCommitment LocalCommitment `json:"localCommitment"`
	CtaSection      AboutCta        `json:"ctaSection"`
}

type AboutHero struct {
	Tagline             string `json:"tagline"`
	Title               string `json:"title"`
	Description         string `json:"description"`
	PrimaryButtonText   string `json:"primaryButtonText"`
	PrimaryButtonLink   string `json:"primaryButtonLink"`
	SecondaryButtonText string `json:"secondaryButtonText"`
	SecondaryButtonLink string `json:"secondaryButtonLink"`
	BackgroundImage     string `json:"backgroundImage"`
}

type OurStory struct {
	SectionTitle string `json:"sectionTitle"`
	Paragraph1   string `json:"paragraph1"`
	Paragraph2   string `json:"paragraph2"`
	Paragraph3   string `json:"paragraph3"`
}

type WhatWeDo struct {
	SectionTitle                 string   `json:"sectionTitle"`
	SectionDescription           string   `json:"sectionDescription"`
	ExploreAllServicesButtonText string   `json:"exploreAllServicesButtonText"`
	ExploreAllServicesButtonIcon string   `json:"exploreAllServicesButtonIcon"`
	ExploreAllServicesButtonLink string   `json:"exploreAllServicesButtonLink"`
	RentCard                     IconCard `json:"rentCard"`
	BuyCard                      IconCard `json:"buyCard"`
	ConstructionCard             IconCard `json:"constructionCard"`
}

type OurValues struct {
	SectionTitle string     `json:"sectionTitle"`
	Items        []IconCard `json:"items"`
	Image        string     `json:"image"`
	ImageAlt     string     `json:"imageAlt"`
}

type LocalCommitment struct {
	SectionTitle       string `json:"sectionTitle"`
	SectionDescription string `json:"sectionDescription"`
	MainOfficeIcon     string `json:"mainOfficeIcon"`
	MainOfficeInfo     string `json:"mainOfficeInfo"`
	PhoneIcon          string `json:"phoneIcon"`
	PhoneInfo          string `json:"phoneInfo"`
	MapImage           string `json:"mapImage"`
	MapImageAlt        string `json:"mapImageAlt"`
	MapPinTitle        string `json:"mapPinTitle"`
	MapPinSubtitle     string `json:"mapPinSubtitle"`
	MapPinIcon         string `json:"mapPinIcon"`
}

type AboutCta struct {
	Title                 string `json:"title"`
	Description           string `json:"description"`
	WhatsappButtonText    string `json:"whatsappButtonText"`
	WhatsappButtonIconSVG string `json:"whatsappButtonIconSvg"`
	WhatsappButtonLink    string `json:"whatsappButtonLink"`
	BookMeetingButtonText string `json:"bookMeetingButtonText"`
	BookMeetingButtonLink string `json:"bookMeetingButtonLink"`
}

// --- Contact page ---

type ContactPage struct {
	Hero              ContactHero       `json:"hero"`
	MapSection        MapSection        `json:"mapSection"`
	TrustTransparency TrustTransparency `json:"trustTransparency"`
}

type ContactHero struct {
	Heading    string `json:"heading"`
	Subheading string `json:"subheading"`
}

type MapSection struct {
	Alt             string `json:"alt"`
	LocationDisplay string `json:"locationDisplay"`
	BackgroundImage string `json:"backgroundImage"`
	PinTitle        string `json:"pinTitle"`
	PinSubtitle     string `json:"pinSubtitle"`
	PinIcon         string `json:"pinIcon"`
}

type TrustTransparency struct {
	SectionTitle       string     `json:"sectionTitle"`
	SectionDescription string     `json:"sectionDescription"`
	Items              []IconCard `json:"items"`
}

// --- Buy / rent listing pages ---

// ListingPage is shared by the buy-homes and rent-properties pages.
type ListingPage struct {
	Hero               ListingHero     `json:"hero"`
	Filters            []ListingFilter `json:"filters"`
	TrustStrip         TrustStrip      `json:"trustStrip"`
	LoadMoreButtonText string          `json:"loadMoreButtonText"`
	LoadMoreButtonIcon string          `json:"loadMoreButtonIcon"`
}

type ListingHero struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ListingFilter struct {
	ID            string `json:"id"`
	Text          string `json:"text"`
	Icon          string `json:"icon,omitempty"`
	IsMoreFilters bool   `json:"isMoreFilters,omitempty"`
}

type TrustStrip struct {
	Icon        string `json:"icon"`
	Heading     string `json:"heading"`
	Description string `json:"description"`
	LinkText    string `json:"linkText"`
	LinkURL     string `json:"linkUrl"`
	LinkIcon    string `json:"linkIcon"`
}

// --- Construction portfolio page ---

type ConstructionPortfolioPage struct {
	Hero                 ConstructionHero     `json:"hero"`
	WhoThisServiceIsFor  CardList             `json:"whoThisServiceIsFor"`
	ConstructionApproach ConstructionApproach `json:"constructionApproach"`
	Gallery              GallerySection       `json:"gallery"`
	FAQSection           FAQSection           `json:"faqSection"`
	FinalCtaSection      FinalCta             `json:"finalCtaSection"`
}

type ConstructionHero struct {
	BackgroundImage        string `json:"backgroundImage"`
	BackgroundImageAlt     string `json:"backgroundImageAlt"`
	Title                  string `json:"title"`
	CraftsmanshipHighlight string `json:"craftsmanshipHighlight"`
	Description            string `json:"description"`
	PrimaryButtonText      string `json:"primaryButtonText"`
	PrimaryButtonLink      string `json:"primaryButtonLink"`
	SecondaryButtonText    string `json:"secondaryButtonText"`
	SecondaryButtonIcon    string `json:"secondaryButtonIcon"`
	SecondaryButtonLink    string `json:"secondaryButtonLink"`
}

type CardList struct {
	SectionTitle string     `json:"sectionTitle"`
	Items        []IconCard `json:"items"`
}

type ConstructionApproach struct {
	SectionTitle       string     `json:"sectionTitle"`
	SectionDescription string     `json:"sectionDescription"`
	Steps              []IconCard `json:"steps"`
}

type GallerySection struct {
	SectionTitle              string `json:"sectionTitle"`
	SectionDescription        string `json:"sectionDescription"`
	ViewAllProjectsButtonText string `json:"viewAllProjectsButtonText"`
	ViewAllProjectsButtonIcon string `json:"viewAllProjectsButtonIcon"`
	ViewAllProjectsButtonLink string `json:"viewAllProjectsButtonLink"`
}

// FAQItem uses numeric ids, unlike the string-keyed card lists.
type FAQItem struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type FAQSection struct {
	SectionTitle       string    `json:"sectionTitle"`
	SectionDescription string    `json:"sectionDescription"`
	FAQs               []FAQItem `json:"faqs"`
}

type FinalCta struct {
	Avatar1Image           string `json:"avatar1Image"`
	Avatar1Alt             string `json:"avatar1Alt"`
	Avatar2Image           string `json:"avatar2Image"`
	Avatar2Alt             string `json:"avatar2Alt"`
	Avatar3Image           string `json:"avatar3Image"`
	Avatar3Alt             string `json:"avatar3Alt"`
	Title                  string `json:"title"`
	Description            string `json:"description"`
	ConsultationButtonText string `json:"consultationButtonText"`
	ConsultationButtonIcon string `json:"consultationButtonIcon"`
	ConsultationButtonLink string `json:"consultationButtonLink"`
	WhatsappButtonText     string `json:"whatsappButtonText"`
	WhatsappButtonIconSVG  string `json:"whatsappButtonIconSvg"`
	WhatsappButtonLink     string `json:"whatsappButtonLink"`
}
