// Command survey is a terminal front-end for the intake form. It walks the
// same step sequence as the web modal and submits to a running intake API.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jingfdev/pawhere/internal/intake"
	"github.com/jingfdev/pawhere/internal/registration/models"
)

func main() {
	apiURL := flag.String("api", "http://localhost:8080", "intake API base URL")
	vip := flag.Bool("vip", false, "register through the VIP tester channel")
	flag.Parse()

	form := intake.NewForm(intake.NewClient(*apiURL), *vip)
	prompter := &prompter{in: bufio.NewScanner(os.Stdin)}

	if *vip {
		fmt.Println("Join Our VIP Testers!")
	} else {
		fmt.Println("Join the Pack!")
	}

	for form.Step() != intake.StepConfirmation {
		fmt.Printf("\n--- %s ---\n", form.Step())
		prompter.fillStep(form)
		if err := form.Next(); err != nil {
			if errs, ok := err.(models.FieldErrors); ok {
				for _, fe := range errs {
					fmt.Printf("  ! %s\n", fe.Message)
				}
				continue
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	fmt.Println("\n--- Confirmation ---")
	fmt.Printf("Submitting registration for %s\n", form.Answers().Email)

	result, err := form.Submit(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	switch result.Outcome {
	case intake.OutcomeCreated:
		fmt.Println("Success! " + result.Message)
	case intake.OutcomeAlreadyRegistered:
		fmt.Println(result.Message)
	case intake.OutcomeInvalid:
		fmt.Println(result.Message)
		for _, fe := range result.FieldErrors {
			fmt.Printf("  ! %s\n", fe.Message)
		}
		os.Exit(1)
	default:
		fmt.Fprintln(os.Stderr, result.Message)
		os.Exit(1)
	}
}

type prompter struct {
	in *bufio.Scanner
}

func (p *prompter) fillStep(form *intake.Form) {
	a := form.Answers()

	switch form.Step() {
	case intake.StepContactInfo:
		a.Email = p.ask("Email address")
		a.Phone = p.ask("Phone number")

	case intake.StepBackground:
		a.OwnsPet = p.askYesNo("Do you own a pet?")
		if a.OwnsPet == models.Yes {
			p.askTags(form.TogglePetType, "What type of pet(s) do you own?", models.PetTypes)
			if other := p.ask("Other pet type (blank to skip)"); other != "" {
				form.TogglePetType(models.TagOther)
				a.PetTypeOther = other
			}
			a.OutdoorFrequency = p.askFrequency()
			a.HasLostPet = p.askYesNo("Have you ever lost a pet?")
			if a.HasLostPet == models.Yes {
				a.HowFoundPet = p.ask("How did you find them? (blank to skip)")
			}
		}

	case intake.StepCurrentSolutions:
		a.UsesTrackingSolution = p.askYesNo("Do you use a tracking solution today?")
		if a.UsesTrackingSolution == models.Yes {
			a.TrackingSolutionDetails = p.ask("Please specify (e.g., GPS collar, microchip)")
		}
		p.askTags(form.ToggleSafetyWorry, "What worries you most about your pet's safety?", models.SafetyWorries)
		if other := p.ask("Other worry (blank to skip)"); other != "" {
			form.ToggleSafetyWorry(models.TagOther)
			a.SafetyWorriesOther = other
		}
		a.CurrentSafetyMethods = p.ask("What do you currently do to keep your pet safe?")

	case intake.StepExpectations:
		fmt.Printf("Which feature is MOST important to you? (select up to %d)\n", models.MaxImportantFeatures)
		p.askTags(form.ToggleImportantFeature, "", models.ImportantFeatures)
		p.askTags(form.ToggleExpectedChallenge, "What challenges do you expect?", models.ExpectedChallenges)
		if other := p.ask("Other challenge (blank to skip)"); other != "" {
			form.ToggleExpectedChallenge(models.TagOther)
			a.ExpectedChallengesOther = other
		}
		a.UsefulnessRating = p.askRating()
		a.WishFeature = p.ask("If PAWhere could have one magic feature, what would it be?")
	}
}

func (p *prompter) ask(label string) string {
	fmt.Printf("%s: ", label)
	if !p.in.Scan() {
		return ""
	}
	return strings.TrimSpace(p.in.Text())
}

func (p *prompter) askYesNo(label string) models.YesNo {
	for {
		switch p.ask(label + " [yes/no]") {
		case "yes", "y":
			return models.Yes
		case "no", "n":
			return models.No
		case "":
			return ""
		}
		fmt.Println("  please answer yes or no")
	}
}

func (p *prompter) askFrequency() models.OutdoorFrequency {
	for {
		answer := p.ask("How often does your pet go outdoors? [rarely/sometimes/often]")
		if answer == "" {
			return ""
		}
		if v := models.OutdoorFrequency(answer); v.Valid() {
			return v
		}
		fmt.Println("  please answer rarely, sometimes or often")
	}
}

func (p *prompter) askRating() int {
	for {
		answer := p.ask("How useful would PAWhere be for you? [1-10]")
		if answer == "" {
			return 0
		}
		if v, err := strconv.Atoi(answer); err == nil && v >= 1 && v <= 10 {
			return v
		}
		fmt.Println("  please enter a number from 1 to 10")
	}
}

// askTags presents a numbered catalog and toggles the chosen entries.
func (p *prompter) askTags(toggle func(string), label string, catalog []string) {
	if label != "" {
		fmt.Println(label)
	}
	for i, tag := range catalog {
		fmt.Printf("  %d) %s\n", i+1, tag)
	}
	for {
		answer := p.ask("Select a number (blank to continue)")
		if answer == "" {
			return
		}
		idx, err := strconv.Atoi(answer)
		if err != nil || idx < 1 || idx > len(catalog) {
			fmt.Println("  invalid choice")
			continue
		}
		toggle(catalog[idx-1])
	}
}
