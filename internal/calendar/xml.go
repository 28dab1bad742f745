package calendar

import "encoding/xml"

// Wire types for the SENATEDATA calendar feed. The schema itself is owned
// upstream; these structs mirror only the parts the ingester consumes.

type xmlSenateData struct {
	XMLName         xml.Name          `xml:"SENATEDATA"`
	Calendars       []xmlCalendar     `xml:"sencalendar"`
	ActiveCalendars []xmlCalendar     `xml:"sencalendaractive"`
}

type xmlCalendar struct {
	No           string           `xml:"no,attr"`
	Year         string           `xml:"year,attr"`
	SessYr       string           `xml:"sessyr,attr"`
	Action       string           `xml:"action,attr"`
	Supplemental *xmlSupplemental `xml:"supplemental"`
}

type xmlSupplemental struct {
	ID          string       `xml:"id,attr"`
	CalDate     string       `xml:"caldate"`
	ReleaseDate string       `xml:"releasedate"`
	ReleaseTime string       `xml:"releasetime"`
	Sections    *xmlSections `xml:"sections"`
	Sequence    *xmlSequence `xml:"sequence"`
}

type xmlSections struct {
	Section []xmlSection `xml:"section"`
}

type xmlSection struct {
	Name   string     `xml:"name,attr"`
	Cd     string     `xml:"cd,attr"`
	Type   string     `xml:"type,attr"`
	CalNos *xmlCalNos `xml:"calnos"`
}

type xmlSequence struct {
	No          string     `xml:"no,attr"`
	ActCalDate  string     `xml:"actcaldate"`
	ReleaseDate string     `xml:"releasedate"`
	ReleaseTime string     `xml:"releasetime"`
	Notes       string     `xml:"notes"`
	CalNos      *xmlCalNos `xml:"calnos"`
}

type xmlCalNos struct {
	CalNo []xmlCalNo `xml:"calno"`
}

type xmlCalNo struct {
	No         string   `xml:"no,attr"`
	MotionDate string   `xml:"motiondate"`
	Bill       *xmlBill `xml:"bill"`
	Sponsor    string   `xml:"sponsor"`
	SubBill    *xmlBill `xml:"subbill"`
	SubSponsor string   `xml:"subsponsor"`
}

type xmlBill struct {
	No   string `xml:"no,attr"`
	High bool   `xml:"high,attr"`
}
