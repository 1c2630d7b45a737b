package domain

import "fmt"

type Gender uint8

const (
	GenderMale   Gender = 0
	GenderFemale Gender = 1
)

// GenderFromValue folds any non-zero selector onto GenderFemale.
func GenderFromValue(v int64) Gender {
	if v == 0 {
		return GenderMale
	}
	return GenderFemale
}

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	default:
		return fmt.Sprintf("gender(%d)", uint8(g))
	}
}

type Language uint8

const (
	LanguageKana Language = iota
	LanguageKanji
	LanguageEnglish
	LanguageFrench
	LanguageItalian
	LanguageGerman
	LanguageSpanish
	LanguageKorean
	LanguageSimplifiedChinese
	LanguageTraditionalChinese
)

var languageNames = [...]string{
	LanguageKana:               "kana",
	LanguageKanji:              "kanji",
	LanguageEnglish:            "english",
	LanguageFrench:             "french",
	LanguageItalian:            "italian",
	LanguageGerman:             "german",
	LanguageSpanish:            "spanish",
	LanguageKorean:             "korean",
	LanguageSimplifiedChinese:  "simplified-chinese",
	LanguageTraditionalChinese: "traditional-chinese",
}

func (l Language) Valid() bool {
	return int(l) < len(languageNames)
}

func (l Language) String() string {
	if !l.Valid() {
		return fmt.Sprintf("language(%d)", uint8(l))
	}
	return languageNames[l]
}
