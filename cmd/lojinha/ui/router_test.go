package ui

import "testing"

func TestInitial(t *testing.T) {
	if got := Initial(false); got != PageLanding {
		t.Errorf("expected landing, got %s", got)
	}
	if got := Initial(true); got != PageProducts {
		t.Errorf("expected products, got %s", got)
	}
}

func TestNext_UngatedTargets(t *testing.T) {
	for _, authenticated := range []bool{false, true} {
		if got := Next(PageProducts, EvHome, authenticated); got != PageLanding {
			t.Errorf("EvHome(auth=%v): got %s", authenticated, got)
		}
		if got := Next(PageLanding, EvCreateAccount, authenticated); got != PageCreateAccount {
			t.Errorf("EvCreateAccount(auth=%v): got %s", authenticated, got)
		}
		if got := Next(PageLanding, EvLogin, authenticated); got != PageLogin {
			t.Errorf("EvLogin(auth=%v): got %s", authenticated, got)
		}
	}
}

func TestNext_GatedTargetsRefusedWithoutSession(t *testing.T) {
	gated := []Event{EvProducts, EvCart, EvProductManager, EvSupplier}
	for _, ev := range gated {
		if got := Next(PageLanding, ev, false); got != PageLanding {
			t.Errorf("event %v without session: expected unchanged page, got %s", ev, got)
		}
	}
}

func TestNext_GatedTargetsReachableWithSession(t *testing.T) {
	cases := map[Event]Page{
		EvProducts:       PageProducts,
		EvCart:           PageCart,
		EvProductManager: PageProductManager,
		EvSupplier:       PageSupplier,
	}
	for ev, want := range cases {
		if got := Next(PageLanding, ev, true); got != want {
			t.Errorf("event %v with session: expected %s, got %s", ev, want, got)
		}
	}
}

func TestNext_LoginFlow(t *testing.T) {
	page := Initial(false)
	page = Next(page, EvLogin, false)
	if page != PageLogin {
		t.Fatalf("expected login page, got %s", page)
	}
	page = Next(page, EvLoginSuccess, true)
	if page != PageProducts {
		t.Fatalf("login success must land on products, got %s", page)
	}
	page = Next(page, EvLogout, false)
	if page != PageLanding {
		t.Fatalf("logout must land on the landing page, got %s", page)
	}
}

// Every event from every page yields a valid page, never a panic or an
// out-of-range value.
func TestNext_Total(t *testing.T) {
	pages := []Page{PageLanding, PageCreateAccount, PageLogin, PageProducts, PageCart, PageProductManager, PageSupplier}
	events := []Event{EvHome, EvCreateAccount, EvLogin, EvProducts, EvCart, EvProductManager, EvSupplier, EvLoginSuccess, EvLogout}

	for _, p := range pages {
		for _, ev := range events {
			for _, authenticated := range []bool{false, true} {
				got := Next(p, ev, authenticated)
				if got.String() == "unknown" {
					t.Errorf("Next(%s, %v, %v) produced an invalid page", p, ev, authenticated)
				}
			}
		}
	}
}
