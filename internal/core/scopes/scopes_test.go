package scopes

import (
	"reflect"
	"testing"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "email with recipient",
			in:   "enviar email para joao@teste.com",
			want: []string{Gmail},
		},
		{
			name: "email intent beats incidental calendar word",
			in:   "mandar um email sobre a reuniao de hoje",
			want: []string{Gmail},
		},
		{
			name: "calendar intent",
			in:   "agendar reuniao com o time amanha",
			want: []string{Calendar},
		},
		{
			name: "calendar via compromisso",
			in:   "marcar um compromisso",
			want: []string{Calendar},
		},
		{
			name: "email and calendar with connector",
			in:   "enviar um email para ana e depois marcar a reuniao na agenda",
			want: []string{Gmail, Calendar},
		},
		{
			name: "spreadsheet implies drive",
			in:   "criar planilha de gastos mensais",
			want: []string{Spreadsheets, Drive},
		},
		{
			name: "document implies drive and docs",
			in:   "excluir um documento importante",
			want: []string{Drive, Documents},
		},
		{
			name: "bare email word",
			in:   "meu email esta cheio",
			want: []string{Gmail},
		},
		{
			name: "generic drive",
			in:   "quanto espaco tenho no drive",
			want: []string{Drive},
		},
		{
			name: "billing",
			in:   "segue o boleto da mensalidade",
			want: []string{Billing},
		},
		{
			name: "factual question has no scopes",
			in:   "qual e a capital do brasil?",
			want: nil,
		},
		{
			name: "personal request has no scopes",
			in:   "preciso de um plano de estudos personalizado para aprender python trabalhando 8 horas por dia",
			want: nil,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Detect(c.in)
			if !reflect.DeepEqual(got, c.want) {
				t.Fatalf("Detect(%q) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestDetect_SheetsNeverLeaksGenericDrive(t *testing.T) {
	// "planilha" plus a literal "drive" mention must not produce drive twice
	got := Detect("mover a planilha para o drive")
	seen := map[string]int{}
	for _, s := range got {
		seen[s]++
	}
	if seen[Drive] != 1 {
		t.Fatalf("drive scope appears %d times in %v", seen[Drive], got)
	}
	if seen[Spreadsheets] != 1 {
		t.Fatalf("spreadsheets scope missing from %v", got)
	}
}

func TestDetect_Deterministic(t *testing.T) {
	for _, in := range []string{
		"enviar email para joao@teste.com",
		"criar planilha e documento",
		"agendar reuniao e depois mandar email",
	} {
		a := Detect(in)
		b := Detect(in)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("Detect(%q) unstable: %v vs %v", in, a, b)
		}
	}
}
