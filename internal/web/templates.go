package web

import (
	"bytes"
	"html/template"
)

type templates struct {
	base  *template.Template
	game  *template.Template
	board *template.Template
	index *template.Template
}

type indexData struct {
	Modes        []string
	Difficulties []string
	Mode         string
	Difficulty   string
}

type gameData struct {
	ID    string
	Board boardView
}

func loadTemplates() *templates {
	base := template.Must(template.New("base").Parse(baseTemplate))
	// The board lives in the base set so the game page can include it.
	template.Must(base.New("board").Parse(boardTemplate))
	index := template.Must(template.Must(base.Clone()).New("content").Parse(indexTemplate))
	game := template.Must(template.Must(base.Clone()).New("content").Parse(`
<div hx-ext="sse" hx-sse="connect:/game/{{.ID}}/events">
  <div id="board-slot" hx-sse="swap:board">{{template "board" .Board}}</div>
</div>`))
	// Standalone board template used for fragment rendering
	board := template.Must(template.New("board_only").Parse(boardTemplate))
	return &templates{base: base, game: game, board: board, index: index}
}

func renderTemplate(t *template.Template, name string, data any) []byte {
	var buf bytes.Buffer
	if name == "" {
		_ = t.Execute(&buf, data)
	} else {
		_ = t.ExecuteTemplate(&buf, name, data)
	}
	return buf.Bytes()
}

const baseTemplate = `<!doctype html><html><head>
<meta charset="utf-8"/>
<title>Neko Gomoku</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org/dist/ext/sse.js"></script>
<style>
.grid { display: inline-grid; grid-template-columns: repeat(12, 2.2rem); gap: 2px; background: #bbb; }
.row { display: contents; }
.cell { width: 2.2rem; height: 2.2rem; border: 0; background: #f4ead5; }
.cell.black { background: #222; }
.cell.white { background: #fafafa; }
.cell.picked { outline: 3px solid #e89; }
.cell.win { box-shadow: inset 0 0 0 3px gold; }
.alert { color: #b00; }
</style>
</head><body>{{template "content" .}}
<script>
document.addEventListener('click', function (e) {
  var cell = e.target.closest('#board .cell');
  if (!cell) return;
  var board = document.getElementById('board');
  if (board.dataset.playable !== 'true' || !cell.classList.contains('empty') || cell.classList.contains('picked')) return;
  var input = board.querySelector('#play input[name=path]');
  var path = input.value ? input.value.split(';') : [];
  if (path.length) {
    var last = path[path.length - 1].split(',').map(Number);
    if (Math.abs(last[0] - cell.dataset.x) > 1 || Math.abs(last[1] - cell.dataset.y) > 1) return;
  }
  path.push(cell.dataset.x + ',' + cell.dataset.y);
  cell.classList.add('picked');
  input.value = path.join(';');
  if (path.length === Number(board.dataset.turnLength)) htmx.trigger('#play', 'submit');
});
</script>
</body></html>`

const indexTemplate = `<h1>Neko Gomoku</h1>
<form action="/game" method="post">
  <select name="mode">{{range .Modes}}<option value="{{.}}"{{if eq . $.Mode}} selected{{end}}>{{.}}</option>{{end}}</select>
  <select name="difficulty">{{range .Difficulties}}<option value="{{.}}"{{if eq . $.Difficulty}} selected{{end}}>{{.}}</option>{{end}}</select>
  <button>Create</button>
</form>`

const boardTemplate = `
<div id="board" data-turn-length="{{.TurnLength}}" data-playable="{{.Playable}}">
  <p class="status">{{.Status}}</p>
  {{if .Error}}
  <div class="alert">{{.Error}}</div>
  {{end}}
  <form id="play" hx-post="/game/{{.ID}}/play" hx-target="#board" hx-swap="outerHTML" method="post">
    <input type="hidden" name="path" value="">
  </form>
  <div class="grid">
    {{range .Rows}}
    <div class="row">
      {{range .}}<button type="button" class="cell {{.Class}}{{if .Win}} win{{end}}" data-x="{{.X}}" data-y="{{.Y}}" style="transform: rotate({{.Facing}}deg)"></button>{{end}}
    </div>
    {{end}}
  </div>
  <form hx-post="/game/{{.ID}}/reset" hx-target="#board" hx-swap="outerHTML" method="post">
    <select name="mode">
      <option value="pve"{{if eq .Mode.String "pve"}} selected{{end}}>pve</option>
      <option value="pvp"{{if eq .Mode.String "pvp"}} selected{{end}}>pvp</option>
    </select>
    <button>New game</button>
  </form>
  <form hx-post="/game/{{.ID}}/difficulty" hx-target="#board" hx-swap="outerHTML" hx-trigger="change" method="post">
    <select name="difficulty">{{range .Difficulties}}<option value="{{.}}"{{if eq . $.Difficulty}} selected{{end}}>{{.}}</option>{{end}}</select>
  </form>
</div>
`
