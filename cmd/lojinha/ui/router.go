package ui

// Page identifies one of the seven views. Navigation state lives entirely
// in memory; there is no deep-linking.
type Page int

const (
	PageLanding Page = iota
	PageCreateAccount
	PageLogin
	PageProducts
	PageCart
	PageProductManager
	PageSupplier
)

func (p Page) String() string {
	switch p {
	case PageLanding:
		return "landing"
	case PageCreateAccount:
		return "createAccount"
	case PageLogin:
		return "login"
	case PageProducts:
		return "products"
	case PageCart:
		return "cart"
	case PageProductManager:
		return "productManager"
	case PageSupplier:
		return "supplier"
	}
	return "unknown"
}

// Event is a navigation event.
type Event int

const (
	EvHome Event = iota
	EvCreateAccount
	EvLogin
	EvProducts
	EvCart
	EvProductManager
	EvSupplier
	EvLoginSuccess
	EvLogout
)

// Initial returns the page shown at startup: products when a stored
// session was restored, the landing page otherwise.
func Initial(authenticated bool) Page {
	if authenticated {
		return PageProducts
	}
	return PageLanding
}

// Next is the router transition function. Unauthenticated-only targets are
// always reachable; authenticated-only targets are silently refused (the
// state is unchanged) without the flag. Logout always lands on the landing
// page.
func Next(current Page, ev Event, authenticated bool) Page {
	switch ev {
	case EvHome:
		return PageLanding
	case EvCreateAccount:
		return PageCreateAccount
	case EvLogin:
		return PageLogin
	case EvLoginSuccess:
		return PageProducts
	case EvLogout:
		return PageLanding
	case EvProducts:
		if authenticated {
			return PageProducts
		}
	case EvCart:
		if authenticated {
			return PageCart
		}
	case EvProductManager:
		if authenticated {
			return PageProductManager
		}
	case EvSupplier:
		if authenticated {
			return PageSupplier
		}
	}
	return current
}
