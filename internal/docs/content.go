package docs

var topics = []Topic{
	{
		Name:    "quickstart",
		Title:   "Quick Start",
		Summary: "Getting started with navtoc",
		Content: topicQuickstart,
	},
	{
		Name:    "format",
		Title:   "Navigation Table Format",
		Summary: "Layout of nav-links tables and how they link together",
		Content: topicFormat,
	},
	{
		Name:    "config",
		Title:   "Configuration Reference",
		Summary: "Config file schema, fields, and defaults",
		Content: topicConfig,
	},
	{
		Name:    "commands",
		Title:   "Commands",
		Summary: "What each navtoc command prints",
		Content: topicCommands,
	},
	{
		Name:    "server",
		Title:   "HTTP Server",
		Summary: "Endpoints served by 'navtoc serve'",
		Content: topicServer,
	},
}

const topicQuickstart = `Quick Start
===========

1. Initialize a project next to the generated help output:

    cd your-webhelp
    navtoc init

   This creates .navtoc.yaml. When a nav-links/json directory is found,
   source.dir points at it and source.root names the table no other
   table refers to.

2. Check that every table loads and links up:

    navtoc doctor

3. Browse the table of contents:

    navtoc tree --depth 2
    navtoc find concept_bbc_cxr_2jb-d46e117783
    navtoc search "batch"

4. Serve it as JSON:

    navtoc serve --listen 127.0.0.1:8088
`

const topicFormat = `Navigation Table Format
=======================

Each table is one file named <table>.js holding a single call:

    define({"topics" : [ { ... }, { ... }, ]});

Trailing commas are allowed. Every topic has:

    title        display title (required, not blank)
    shortdesc    optional HTML fragment, usually <p class="shortdesc">
    href         document path with optional #anchor (required)
    attributes   string map, commonly {"data-id": "..."}
    menu         {"hasChildren": true|false}
    tocID        identifier, unique across the whole tree (required)
    next         containers only, see below
    topics       inline children; [] for leaves

Leaves carry "topics":[] and no next.

Containers carry "menu":{"hasChildren":true}. When their children are
inline, "topics" holds them. Otherwise "topics" is absent and "next"
names the table holding the children, which must be the container's own
tocID: the children of topic abc live in abc.js.

The loader starts at the root table and follows next references
breadth-first. A missing child table leaves the container deferred; with
source.strict the load fails instead.
`

const topicConfig = `Configuration Reference
=======================

navtoc looks for .navtoc.yaml in the current directory and its parents,
unless --config is given. Without any file the defaults below apply.
Relative paths are resolved against the directory holding the file.

source:
  dir: .                      # directory holding the <table>.js files
  root: ""                    # root table name, without .js
  strict: false               # fail on missing child tables
  snapshot: ""                # optional snapshot file, see 'navtoc export'

server:
  listen: 127.0.0.1:8088      # host:port for 'navtoc serve'

logging:
  console:
    level: normal             # none | debug | normal
  file:
    level: none
    destination: ""           # required when level is not none
    mode: append              # append | overwrite

When source.snapshot names an existing file, commands read the tree from
it instead of parsing the tables again; 'navtoc export' writes it. When
source.root is empty, the only table no other table refers to is used.

Run 'navtoc dumpconfig' to print the effective configuration.
`

const topicCommands = `Commands
========

  init              write a starter .navtoc.yaml
  tree [--depth N]  print the outline, + marks containers, … marks
                    containers whose child table was not found
  find TOCID        print one topic with its breadcrumb and description
  flat              print every topic in display order
  search QUERY      case-insensitive title search
  doctor            check every table in source.dir; --strict makes
                    missing and unreachable tables fatal
  export FILE       write the resolved tree as a snapshot
  serve             start the HTTP server
  dumpconfig        print the effective configuration
  docs [TOPIC]      show this documentation

Global flags: --config/-c FILE, --debug/-d. Source flags --dir and
--root override the configuration for a single run.

A lookup of an unknown tocID exits with status 1. Malformed tables are
reported with the table, the path of the topic inside it and the field
at fault, for example:

    error: navlinks: table guide: topics[2].topics[0] (kafka): 'href' is required
`

const topicServer = `HTTP Server
===========

'navtoc serve' loads the tree once and serves it read-only.

  GET /health                      {"status":"ok"}
  GET /api/toc                     nested topic tree
  GET /api/toc/flat                every topic in display order
  GET /api/topics/{tocID}          one topic with its breadcrumb
  GET /api/search?title=QUERY      title search
  GET /nav-links/json/{table}.js   a table re-encoded in generated form

Unknown topics and tables answer 404 with {"error": "..."}. Every
response carries X-Navtoc-Snapshot, the identifier of the loaded tree.
The server stops gracefully on SIGINT or SIGTERM.
`
