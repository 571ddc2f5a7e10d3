package dispatch

import "github.com/ginjaninja78/e911-csv-converter/internal/types"

// ServiceClass is the category of telephone service behind a 911 record.
// The set is closed: ParseServiceClass is the only way to obtain one from
// raw input.
type ServiceClass byte

const (
	ClassError        ServiceClass = '0'
	ClassResidence    ServiceClass = '1'
	ClassBusiness     ServiceClass = '2'
	ClassPBXResidence ServiceClass = '3'
	ClassPBXBusiness  ServiceClass = '4'
	ClassCentrex      ServiceClass = '5'
	ClassPayphone     ServiceClass = '6'
	ClassCoin         ServiceClass = '7'
	ClassMobile       ServiceClass = '8'
	ClassResidenceX   ServiceClass = '9'
	ClassWireless     ServiceClass = 'W'
	ClassWirelessP1   ServiceClass = 'G'
	ClassWirelessP2   ServiceClass = 'H'
	ClassVoIP         ServiceClass = 'V'
	ClassTelematics   ServiceClass = 'T'
)

// ParseServiceClass decodes a single-character class code.
func ParseServiceClass(code string) (ServiceClass, error) {
	if len(code) == 1 {
		c := ServiceClass(code[0])
		if c.Abbr() != "" {
			return c, nil
		}
	}
	return 0, &types.UnknownCodeError{Field: "Class", Code: code}
}

// Abbr returns the display abbreviation, or "" for a value outside the table.
func (c ServiceClass) Abbr() string {
	switch c {
	case ClassError:
		return "ERR"
	case ClassResidence:
		return "RESD"
	case ClassBusiness:
		return "BUSN"
	case ClassPBXResidence:
		return "PBXR"
	case ClassPBXBusiness:
		return "PBXB"
	case ClassCentrex:
		return "CNTX"
	case ClassPayphone:
		return "PAY$"
	case ClassCoin:
		return "COIN"
	case ClassMobile:
		return "MOBL"
	case ClassResidenceX:
		return "RESX"
	case ClassWireless:
		return "WRLS"
	case ClassWirelessP1:
		return "WPH1"
	case ClassWirelessP2:
		return "WPH2"
	case ClassVoIP:
		return "VOIP"
	case ClassTelematics:
		return "TLMA"
	}
	return ""
}

// String returns the raw one-character code.
func (c ServiceClass) String() string { return string(rune(c)) }

// ServiceClasses lists every recognised class in table order.
func ServiceClasses() []ServiceClass {
	return []ServiceClass{
		ClassError, ClassResidence, ClassBusiness, ClassPBXResidence, ClassPBXBusiness,
		ClassCentrex, ClassPayphone, ClassCoin, ClassMobile, ClassResidenceX,
		ClassWireless, ClassWirelessP1, ClassWirelessP2, ClassVoIP, ClassTelematics,
	}
}

// Listing says whether the number is published in the directory.
type Listing byte

const (
	Unlisted Listing = '0'
	Listed   Listing = '3'
)

// ParseListing decodes the Type field.
func ParseListing(code string) (Listing, error) {
	switch code {
	case "0":
		return Unlisted, nil
	case "3":
		return Listed, nil
	}
	return 0, &types.UnknownCodeError{Field: "Type", Code: code}
}

// String renders the flag as "TRUE" or "FALSE".
func (l Listing) String() string {
	if l == Listed {
		return "TRUE"
	}
	return "FALSE"
}
