package catalog

import "github.com/footyguess/gameserver/models"

// SeedFootballers is the built-in 24-card board used when the database
// holds no catalog yet.
func SeedFootballers() []models.Footballer {
	return []models.Footballer{
		{ID: "f01", Name: "Marco Silva", Club: "Madrid FC", Nation: "Spain", Position: "GK", AgeBracket: "30+", HairColor: "black", FacialHair: true, BootsColor: "white"},
		{ID: "f02", Name: "Jonas Becker", Club: "Munich SV", Nation: "Germany", Position: "GK", AgeBracket: "25-30", HairColor: "blond", FacialHair: false, BootsColor: "black"},
		{ID: "f03", Name: "Diego Ferreira", Club: "Lisbon United", Nation: "Portugal", Position: "DEF", AgeBracket: "25-30", HairColor: "brown", FacialHair: true, BootsColor: "red"},
		{ID: "f04", Name: "Luca Romano", Club: "Milano Calcio", Nation: "Italy", Position: "DEF", AgeBracket: "under-25", HairColor: "black", FacialHair: false, BootsColor: "white"},
		{ID: "f05", Name: "Pierre Dubois", Club: "Paris Royale", Nation: "France", Position: "DEF", AgeBracket: "30+", HairColor: "brown", FacialHair: true, BootsColor: "blue"},
		{ID: "f06", Name: "Sven Olsen", Club: "Copenhagen BK", Nation: "Denmark", Position: "DEF", AgeBracket: "25-30", HairColor: "blond", FacialHair: false, BootsColor: "black"},
		{ID: "f07", Name: "Andres Castillo", Club: "Madrid FC", Nation: "Argentina", Position: "MID", AgeBracket: "under-25", HairColor: "black", FacialHair: false, BootsColor: "gold"},
		{ID: "f08", Name: "Tomasz Kowal", Club: "Warsaw Legia", Nation: "Poland", Position: "MID", AgeBracket: "25-30", HairColor: "brown", FacialHair: true, BootsColor: "white"},
		{ID: "f09", Name: "Yuto Tanaka", Club: "Osaka Eleven", Nation: "Japan", Position: "MID", AgeBracket: "under-25", HairColor: "black", FacialHair: false, BootsColor: "red"},
		{ID: "f10", Name: "Kofi Mensah", Club: "Lisbon United", Nation: "Ghana", Position: "MID", AgeBracket: "25-30", HairColor: "black", FacialHair: true, BootsColor: "green"},
		{ID: "f11", Name: "Erik Lindqvist", Club: "Stockholm IF", Nation: "Sweden", Position: "MID", AgeBracket: "30+", HairColor: "blond", FacialHair: true, BootsColor: "black"},
		{ID: "f12", Name: "Bruno Costa", Club: "Porto Azul", Nation: "Brazil", Position: "MID", AgeBracket: "25-30", HairColor: "brown", FacialHair: false, BootsColor: "yellow"},
		{ID: "f13", Name: "Emre Yilmaz", Club: "Istanbul SK", Nation: "Turkey", Position: "FWD", AgeBracket: "under-25", HairColor: "black", FacialHair: false, BootsColor: "white"},
		{ID: "f14", Name: "Liam O'Brien", Club: "Dublin Rovers", Nation: "Ireland", Position: "FWD", AgeBracket: "25-30", HairColor: "red", FacialHair: true, BootsColor: "green"},
		{ID: "f15", Name: "Nikolai Petrov", Club: "Sofia Spartak", Nation: "Bulgaria", Position: "FWD", AgeBracket: "30+", HairColor: "brown", FacialHair: true, BootsColor: "black"},
		{ID: "f16", Name: "Samuel Adeyemi", Club: "Paris Royale", Nation: "Nigeria", Position: "FWD", AgeBracket: "under-25", HairColor: "black", FacialHair: false, BootsColor: "orange"},
		{ID: "f17", Name: "Mateo Vargas", Club: "Buenos Aires CA", Nation: "Argentina", Position: "FWD", AgeBracket: "25-30", HairColor: "black", FacialHair: true, BootsColor: "blue"},
		{ID: "f18", Name: "Jan de Vries", Club: "Amsterdam XI", Nation: "Netherlands", Position: "FWD", AgeBracket: "25-30", HairColor: "blond", FacialHair: false, BootsColor: "white"},
		{ID: "f19", Name: "Callum Hughes", Club: "London Athletic", Nation: "England", Position: "DEF", AgeBracket: "under-25", HairColor: "brown", FacialHair: false, BootsColor: "black"},
		{ID: "f20", Name: "Viktor Horvath", Club: "Budapest FC", Nation: "Hungary", Position: "GK", AgeBracket: "30+", HairColor: "gray", FacialHair: true, BootsColor: "black"},
		{ID: "f21", Name: "Rafael Moreno", Club: "Sevilla Norte", Nation: "Spain", Position: "MID", AgeBracket: "30+", HairColor: "black", FacialHair: true, BootsColor: "red"},
		{ID: "f22", Name: "Oliver Schmidt", Club: "Munich SV", Nation: "Germany", Position: "FWD", AgeBracket: "under-25", HairColor: "blond", FacialHair: false, BootsColor: "yellow"},
		{ID: "f23", Name: "Amadou Diallo", Club: "Marseille Sud", Nation: "Senegal", Position: "DEF", AgeBracket: "25-30", HairColor: "black", FacialHair: false, BootsColor: "white"},
		{ID: "f24", Name: "Stefan Ionescu", Club: "Bucharest Stars", Nation: "Romania", Position: "FWD", AgeBracket: "30+", HairColor: "brown", FacialHair: true, BootsColor: "black"},
	}
}

// SeedQuestions is the built-in question bank.
func SeedQuestions() []models.Question {
	return []models.Question{
		{ID: "q01", Text: "Is the player a goalkeeper?", Trait: "position", ExpectedValues: []string{"GK"}, Category: "position"},
		{ID: "q02", Text: "Is the player a defender?", Trait: "position", ExpectedValues: []string{"DEF"}, Category: "position"},
		{ID: "q03", Text: "Is the player a midfielder?", Trait: "position", ExpectedValues: []string{"MID"}, Category: "position"},
		{ID: "q04", Text: "Is the player a forward?", Trait: "position", ExpectedValues: []string{"FWD"}, Category: "position"},
		{ID: "q05", Text: "Does the player defend or keep goal?", Trait: "position", ExpectedValues: []string{"GK", "DEF"}, Category: "position"},
		{ID: "q06", Text: "Is the player under 25?", Trait: "age_bracket", ExpectedValues: []string{"under-25"}, Category: "age"},
		{ID: "q07", Text: "Is the player over 30?", Trait: "age_bracket", ExpectedValues: []string{"30+"}, Category: "age"},
		{ID: "q08", Text: "Does the player have black hair?", Trait: "hair_color", ExpectedValues: []string{"black"}, Category: "appearance"},
		{ID: "q09", Text: "Does the player have blond hair?", Trait: "hair_color", ExpectedValues: []string{"blond"}, Category: "appearance"},
		{ID: "q10", Text: "Does the player have facial hair?", Trait: "facial_hair", ExpectedValues: []string{"yes"}, Category: "appearance"},
		{ID: "q11", Text: "Does the player wear black boots?", Trait: "boots_color", ExpectedValues: []string{"black"}, Category: "appearance"},
		{ID: "q12", Text: "Does the player wear white boots?", Trait: "boots_color", ExpectedValues: []string{"white"}, Category: "appearance"},
		{ID: "q13", Text: "Does the player play in Spain?", Trait: "club", ExpectedValues: []string{"Madrid FC", "Sevilla Norte"}, Category: "club"},
		{ID: "q14", Text: "Is the player South American?", Trait: "nation", ExpectedValues: []string{"Argentina", "Brazil"}, Category: "nation"},
		{ID: "q15", Text: "Is the player from Germany?", Trait: "nation", ExpectedValues: []string{"Germany"}, Category: "nation"},
		{ID: "q16", Text: "Does the player play for Paris Royale?", Trait: "club", ExpectedValues: []string{"Paris Royale"}, Category: "club"},
	}
}
