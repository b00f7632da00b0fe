package rules_test

import (
	"testing"

	"github.com/obahii/data-cleaning/internal/model"
	"github.com/obahii/data-cleaning/internal/rules"
)

type correctCase struct {
	in   model.Value
	want model.Value
}

func runCorrect(t *testing.T, field string, cases []correctCase) {
	t.Helper()
	for _, c := range cases {
		got := rules.Correct(field, c.in)
		if !got.Equal(c.want) {
			t.Errorf("Correct(%s, %q) = %q, want %q", field, c.in, got, c.want)
		}
	}
}

var (
	s    = model.String
	null = model.Null()
)

// ── Registry ───────────────────────────────────────────────────────────────

func TestFields_CanonicalOrder(t *testing.T) {
	want := []string{
		"nom", "prenom", "date_naissance", "cin", "tel", "email", "diplome",
		"etat", "viewed", "contacte", "inscrit", "created",
	}
	got := rules.Fields()
	if len(got) != len(want) {
		t.Fatalf("Fields() returned %d fields, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Fields()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestUnruledFields_PassThrough(t *testing.T) {
	for _, f := range []string{"etablissment", "formation", "lettre_motivation", "ville"} {
		if _, ok := rules.For(f); ok {
			t.Errorf("For(%q) should have no rule", f)
		}
		if !rules.Validate(f, s("anything 123 !")) {
			t.Errorf("Validate(%q) should accept every value", f)
		}
		if got := rules.Correct(f, null); !got.IsNull() {
			t.Errorf("Correct(%q, null) = %q, want null", f, got)
		}
	}
}

func TestRuleKinds(t *testing.T) {
	cases := map[string]rules.Kind{
		"nom":            rules.KindName,
		"prenom":         rules.KindName,
		"date_naissance": rules.KindBirthDate,
		"cin":            rules.KindCIN,
		"tel":            rules.KindPhone,
		"email":          rules.KindEmail,
		"diplome":        rules.KindDiploma,
		"created":        rules.KindCreatedAt,
		"etat":           rules.KindDigitFlag,
		"inscrit":        rules.KindDigitFlag,
	}
	for field, want := range cases {
		r, ok := rules.For(field)
		if !ok {
			t.Errorf("For(%q) has no rule", field)
			continue
		}
		if r.Kind() != want {
			t.Errorf("For(%q).Kind() = %s, want %s", field, r.Kind(), want)
		}
	}
}

// ── Name ───────────────────────────────────────────────────────────────────

func TestName_Validate(t *testing.T) {
	valid := []string{"", "Jean", "jean-pierre", "Élodie", "Ben Ali", "  padded  "}
	for _, v := range valid {
		if !rules.Validate("nom", s(v)) {
			t.Errorf("Validate(nom, %q) should be true", v)
		}
	}
	invalid := []model.Value{s("Jean123"), s("O'Brien"), s("a.b"), null, model.Number(3)}
	for _, v := range invalid {
		if rules.Validate("prenom", v) {
			t.Errorf("Validate(prenom, %q) should be false", v)
		}
	}
}

func TestName_Correct(t *testing.T) {
	runCorrect(t, "nom", []correctCase{
		{s("  jean-pierre  "), s("Jean-Pierre")},
		{s("MOHAMMED amine"), s("Mohammed Amine")},
		{s("élodie"), s("Élodie")},
		{s("Jean123"), null},
		{null, null},
	})
}

// ── Birth date ─────────────────────────────────────────────────────────────

func TestBirthDate(t *testing.T) {
	for _, v := range []string{"2001-02-28", "2001-2-3", "2001-02-3"} {
		if !rules.Validate("date_naissance", s(v)) {
			t.Errorf("%q should be a valid birth date", v)
		}
	}
	for _, v := range []string{"2001-02-30", "2001-2-30", "01-02-28", "28/02/2001", "2001-02-28 10:00:00", ""} {
		if rules.Validate("date_naissance", s(v)) {
			t.Errorf("%q should not be a valid birth date", v)
		}
	}
	runCorrect(t, "date_naissance", []correctCase{
		{s("1999-12-31"), s("1999-12-31")},
		{s("31/12/1999"), null},
	})
}

// ── National ID ────────────────────────────────────────────────────────────

func TestCIN(t *testing.T) {
	for _, v := range []string{"A123", "ab123456", "BE9999999"} {
		if !rules.Validate("cin", s(v)) {
			t.Errorf("Validate(cin, %q) should be true", v)
		}
	}
	for _, v := range []string{"A12", "ABC123", "123456", "A 123456", "a1b2"} {
		if rules.Validate("cin", s(v)) {
			t.Errorf("Validate(cin, %q) should be false", v)
		}
	}
	runCorrect(t, "cin", []correctCase{
		{s("a 123 456"), s("A123456")},
		{s("bk12345"), s("BK12345")},
		{s("a1b2"), null},
		{model.Number(123456), null},
	})
}

// ── Phone ──────────────────────────────────────────────────────────────────

func TestPhone_Correct(t *testing.T) {
	runCorrect(t, "tel", []correctCase{
		{s("612345678"), s("+212612345678")},
		{s("212612345678"), s("+212612345678")},
		{s("+212612345678"), s("+212612345678")},
		{s("0612345678"), null},
		{s("+212712345678"), null},
		{model.Number(612345678), s("+212612345678")},
		{model.Number(212612345678), s("+212612345678")},
		{null, null},
	})
}

// ── Email ──────────────────────────────────────────────────────────────────

func TestEmail_Validate(t *testing.T) {
	for _, v := range []string{"john@gmail.com", "j.doe_1-x@Example.ORG"} {
		if !rules.Validate("email", s(v)) {
			t.Errorf("Validate(email, %q) should be true", v)
		}
	}
	for _, v := range []string{"john@gma", "john@mail.co.uk", "john@g2mail.com", "john", "@gmail.com"} {
		if rules.Validate("email", s(v)) {
			t.Errorf("Validate(email, %q) should be false", v)
		}
	}
}

func TestEmail_Correct(t *testing.T) {
	runCorrect(t, "email", []correctCase{
		{s("john@gma"), s("john@gmail.com")},
		{s("john"), s("john@gmail.com")},
		{s("bad@@x"), null},
		{s("Foo@GMAIL"), s("foo@gmail.com")},
		{s("John@Example.com"), s("john@example.com")},
		{s("sara@hot"), s("sara@hotmail.com")},
		{s("sara@proton"), s("sara@protonmail.com")},
		{s("sara @ out"), s("sara@outlook.com")},
		{s("sara@qq"), null},
		{s("   "), null},
		{null, null},
	})
}

// The first provider in list order wins when several extend the partial.
func TestEmail_ProviderOrder(t *testing.T) {
	// "m" extends only mail.com; "" extends every provider, gmail.com first.
	runCorrect(t, "email", []correctCase{
		{s("x@m"), s("x@mail.com")},
		{s("x@"), s("x@gmail.com")},
	})
	p := rules.Providers()
	if len(p) != 11 || p[0] != "gmail.com" || p[10] != "yandex.com" {
		t.Errorf("Providers() = %v, want 11 providers from gmail.com to yandex.com", p)
	}
	p[0] = "mutated"
	if rules.Providers()[0] != "gmail.com" {
		t.Error("Providers() must return a copy")
	}
}

// ── Diploma ────────────────────────────────────────────────────────────────

func TestDiploma(t *testing.T) {
	if rules.Validate("diplome", s("Bac+5")) {
		t.Error("Validate(diplome, \"Bac+5\") should be false before normalisation")
	}
	runCorrect(t, "diplome", []correctCase{
		{s("  Bac+5 "), s("bac+5")},
		{s("BAC + 3"), s("bac+3")},
		{s("licence"), null},
		{s("AUTRE"), s("autre")},
		{s("bac+10"), null},
		{s(""), null},
		{model.Number(5), null},
	})
}

// ── Created timestamp ──────────────────────────────────────────────────────

func TestCreatedAt(t *testing.T) {
	runCorrect(t, "created", []correctCase{
		{s("2023-05-01 08:30:00"), s("2023-05-01 08:30:00")},
		{s("2023-5-1 8:30:00"), s("2023-5-1 8:30:00")},
		{s("2023-05-01"), null},
		{s("2023-05-01T08:30:00"), null},
		{null, null},
	})
}

// ── Single-digit flag ──────────────────────────────────────────────────────

func TestDigitFlag(t *testing.T) {
	for _, f := range []string{"etat", "viewed", "contacte", "inscrit"} {
		runCorrect(t, f, []correctCase{
			{s("1"), s("1")},
			{s("9"), s("9")},
			{s("12"), s("0")},
			{s("oui"), s("0")},
			{model.Number(1), s("0")},
			{null, s("0")},
		})
	}
}

// ── Idempotence ────────────────────────────────────────────────────────────

// For every valid value, correcting twice equals correcting once.
func TestCorrect_IdempotentOnValid(t *testing.T) {
	samples := []model.Value{
		s(""), s("  jean-pierre  "), s("2001-02-28"), s("a123456"), s("AB12345"),
		s("+212612345678"), s("John@Example.com"), s("bac+2"), s("autre"),
		s("2023-05-01 08:30:00"), s("7"), s("0"),
	}
	for _, field := range rules.Fields() {
		for _, v := range samples {
			if !rules.Validate(field, v) {
				continue
			}
			once := rules.Correct(field, v)
			twice := rules.Correct(field, once)
			if !once.Equal(twice) {
				t.Errorf("%s: Correct(Correct(%q)) = %q, want %q", field, v, twice, once)
			}
		}
	}
}

// Flag corrections land on a valid value, so they are idempotent too.
func TestDigitFlag_DefaultIsValid(t *testing.T) {
	got := rules.Correct("etat", s("bogus"))
	if !rules.Validate("etat", got) {
		t.Errorf("default flag %q should itself be valid", got)
	}
}
