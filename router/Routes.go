package router

// Home is where the navigator lands after logout or unauthenticated access
const Home = "/"

// Route is one client-side route of the application shell
type Route struct {
	Name      string
	Path      string
	Protected bool // requires a live session
}

var routes = []Route{
	{Name: "home", Path: Home},
	{Name: "about", Path: "/about"},
	{Name: "login", Path: "/login"},
	{Name: "create_account", Path: "/create_account"},
	{Name: "create_book", Path: "/create_book", Protected: true},
	{Name: "wishlist", Path: "/wishlist", Protected: true},
	{Name: "recommended", Path: "/recommended", Protected: true},
}

// Routes returns a copy of the route table
func Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}

// Lookup finds the route registered for path
func Lookup(path string) (Route, bool) {
	for _, r := range routes {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}
