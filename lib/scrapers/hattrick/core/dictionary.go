package core

import "htassist/lib/localized"

const (
	FieldAge           = "age"
	FieldNT            = "nt"
	FieldNTProspect    = "nt_prospect"
	FieldAppError      = "app_error"
	FieldAvgPriceBlock = "avg_price_block"
	FieldTotal         = "total"
	FieldBoardReserves = "board_reserves"
	FieldForm          = "form"
	FieldStamina       = "stamina"
	FieldPlaymaking    = "playmaking"
	FieldWinger        = "winger"
	FieldPassing       = "passing"
	FieldScoring       = "scoring"
	FieldSpeciality    = "speciality"
)

// Dictionary holds the localized text patterns of the site. English is not
// complete yet.
var Dictionary = localized.Dictionary{
	FieldAge: localized.MustText(map[string]string{
		"hu": `(?P<years>\d+) éves és (?P<days>\d+) napos`,
		"en": `(?P<years>\d+) years and (?P<days>\d+) days`,
	}),
	FieldNT: localized.MustText(map[string]string{
		"hu": "válogatott csapatának is tagja!",
	}),
	FieldNTProspect: localized.MustText(map[string]string{
		"hu": "nemzeti csapatának jelöltje",
	}),
	FieldAppError: localized.MustText(map[string]string{
		"hu": "Alkalmazáshiba",
		"en": "Application error",
	}),
	FieldAvgPriceBlock: localized.MustText(map[string]string{
		"hu": ">Átlagérték<",
	}),
	FieldTotal: localized.MustText(map[string]string{
		"hu": "Összesen:",
	}),
	FieldBoardReserves: localized.MustText(map[string]string{
		"hu": "Az igazgatóság tartaléka:",
	}),
	FieldForm: localized.MustText(map[string]string{
		"hu": ">Forma<",
		"en": ">Form<",
	}),
	FieldStamina: localized.MustText(map[string]string{
		"hu": ">Erőnlét<",
		"en": ">Stamina<",
	}),
	FieldPlaymaking: localized.MustText(map[string]string{
		"hu": ">Játékszervezés<",
		"en": ">Playmaking<",
	}),
	FieldWinger: localized.MustText(map[string]string{
		"hu": ">Szélsőjáték<",
		"en": ">Winger<",
	}),
	FieldPassing: localized.MustText(map[string]string{
		"hu": ">Átadás<",
		"en": ">Passing<",
	}),
	FieldScoring: localized.MustText(map[string]string{
		"hu": ">Gólszerzés<",
		"en": ">Scoring<",
	}),
	FieldSpeciality: localized.MustText(map[string]string{
		"hu": ">Specialitás<",
		"en": ">Speciality<",
	}),
}
