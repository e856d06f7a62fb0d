package core

import "maps"

// Form is the body of a form-encoded POST.
type Form map[string]string

// Clone returns an independent copy, nil stays nil.
func (f Form) Clone() Form {
	return maps.Clone(f)
}

// Redacted returns a copy with the password masked, safe for error messages.
func (f Form) Redacted() Form {
	out := f.Clone()
	if _, ok := out[PasswordField]; ok {
		out[PasswordField] = "<redacted>"
	}
	return out
}

const (
	EventValidationKey    = "__EVENTVALIDATION"
	ViewStateKey          = "__VIEWSTATE"
	ViewStateGeneratorKey = "__VIEWSTATEGENERATOR"

	UsernameField = "ctl00$CPContent$ucLogin$txtUserName"
	PasswordField = "ctl00$CPContent$ucLogin$txtPassword"

	scriptManagerToken = ";;System.Web.Extensions, Version=4.0.0.0, Culture=neutral, PublicKeyToken=31bf3856ad364e35:en-GB:ad6c4949-7f20-401f-a40f-4d4c52722104:ea597d4b:b25378d2"
)

// TokenKeys are the hidden fields that rotate with every rendered page.
var TokenKeys = []string{EventValidationKey, ViewStateKey, ViewStateGeneratorKey}

// LoginForm returns the login form without its rotating tokens.
func LoginForm(username, password string) Form {
	return Form{
		"ctl00_sm_HiddenField": scriptManagerToken,
		"__EVENTTARGET":        "ctl00$CPContent$ucLogin$butLogin",
		"ctl00$CPHeader$ucMenu$ucLanguages$ddlLanguages": "2",
		UsernameField: username,
		PasswordField: password,
	}
}

// LoadMoreTransfersForm returns the form behind the "more transfers" link of
// the transfer compare page, without its rotating tokens.
func LoadMoreTransfersForm() Form {
	return Form{
		"ctl00_ctl00_sm_HiddenField": scriptManagerToken,
		"__EVENTTARGET":              "ctl00$ctl00$CPContent$CPMain$lnkMoreTransfers",
	}
}

// relative links of the site, joined to the server address after login
const (
	LogoutLink              = "?action=logout"
	PlayersLink             = "Club/Players"
	TransferCompareLink     = "Club/Transfers/TransferCompare"
	TeamLinkPattern         = `Club/\?TeamID=`
	TeamFinanceLink         = "Club/Finances/?teamId="
	NationalTeamPlayersLink = "Club/NationalTeam/NTPlayers.aspx"
	FurtherTransfersLinkId  = "ctl00_ctl00_CPContent_CPMain_lnkMoreTransfers"
)
