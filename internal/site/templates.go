package site

// pageTemplate is the html/template for the interactive tree page.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <style>` + cssContent + `</style>
</head>
<body>
  <header class="top-bar">
    <h1>{{.Title}}</h1>
    {{if .Legend}}<div class="legend">
      {{range .Legend}}<span class="legend-stop"><span class="swatch" style="background:{{.Color}}"></span>{{.Value}}</span>{{end}}
    </div>{{end}}
    <span class="stats">{{.Stats.Categories}} categories · {{.Stats.Pathways}} pathways · {{.Stats.Genes}} genes</span>
    <button type="button" id="reload">Reload</button>
  </header>
  <div id="notices" class="notices"></div>
  <main class="layout">
    <nav class="sidebar-tree" id="tree">
      {{if .LoadError}}<p class="load-error">{{.LoadError}}</p>{{else}}{{.TreeHTML}}{{end}}
    </nav>
    <section class="customize hidden" id="customize">
      <h2>Customize</h2>
      <label>Pathway <input type="text" id="pathway-id" placeholder="map00010"></label>
      <button type="button" id="set-pathway">Set</button>
      <table class="entries">
        <thead><tr><th>Gene</th><th>Background</th><th>Foreground</th><th></th></tr></thead>
        <tbody id="entries"></tbody>
      </table>
      <button type="button" id="build-url">Build URL</button>
      <button type="button" id="clear">Clear</button>
      <p class="url"><a id="url" target="_blank" rel="noopener"></a></p>
      <div id="confirm" class="confirm hidden">
        <p id="confirm-text"></p>
        <button type="button" id="confirm-yes">Discard and continue</button>
        <button type="button" id="confirm-no">Cancel</button>
      </div>
    </section>
  </main>
  <button type="button" id="toggle-customize" class="toggle-customize">Customize</button>
  <script>` + jsContent + `</script>
</body>
</html>`

// exportTemplate wraps the goldmark output of an export.
const exportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <style>` + cssContent + `</style>
</head>
<body>
  <article class="page-content">
    {{.Content}}
  </article>
</body>
</html>`

const cssContent = `
:root { --bg: #ffffff; --fg: #1f2328; --muted: #656d76; --border: #d0d7de; --accent: #0969da; }
body { margin: 0; font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; background: var(--bg); color: var(--fg); }
.top-bar { display: flex; align-items: center; gap: 1rem; padding: .5rem 1rem; border-bottom: 1px solid var(--border); }
.top-bar h1 { font-size: 1.1rem; margin: 0; }
.stats { color: var(--muted); font-size: .85rem; margin-left: auto; }
.layout { display: flex; gap: 1rem; padding: 1rem; }
.sidebar-tree { flex: 1; overflow: auto; }
.sidebar-tree ul { list-style: none; padding-left: 1rem; margin: 0; }
.sidebar-tree li.dir > ul { display: none; }
.sidebar-tree li.dir.expanded > ul { display: block; }
.dir-toggle { cursor: pointer; font-weight: 600; }
.dir-toggle::before { content: "▸ "; color: var(--muted); }
li.expanded > .dir-toggle::before { content: "▾ "; }
.pathway > .dir-toggle { font-weight: 500; }
.actions button { font-size: .75rem; margin-left: .25rem; }
.gene a { color: var(--accent); text-decoration: none; font-family: monospace; }
.swatch { display: inline-block; width: .8rem; height: .8rem; border: 1px solid var(--border); margin-right: .3rem; vertical-align: middle; }
span.gene { font-family: monospace; color: #ffffff; padding: 0 .2rem; }
.leaf-label { color: var(--muted); }
.customize { width: 26rem; border-left: 1px solid var(--border); padding-left: 1rem; }
.hidden { display: none; }
.notices { position: fixed; top: 3.5rem; right: 1rem; width: 22rem; }
.notice { padding: .5rem .75rem; margin-bottom: .5rem; border-radius: 4px; border: 1px solid var(--border); background: #f6f8fa; }
.notice.error { border-color: #cf222e; }
.notice.warning { border-color: #bf8700; }
.load-error, .empty { color: var(--muted); }
.confirm { border: 1px solid #bf8700; padding: .5rem; margin-top: .5rem; }
.toggle-customize { position: fixed; bottom: 1rem; right: 1rem; }
.url a { word-break: break-all; }
.page-content { max-width: 60rem; margin: 2rem auto; }
`

const jsContent = `
(function () {
  "use strict";

  function api(method, path, body) {
    var opts = { method: method, headers: {} };
    if (body !== undefined) {
      opts.headers["Content-Type"] = "application/json";
      opts.body = JSON.stringify(body);
    }
    return fetch(path, opts).then(function (res) {
      return res.json().then(function (data) { return { status: res.status, data: data }; });
    });
  }

  function notice(level, message) {
    var el = document.createElement("div");
    el.className = "notice " + level;
    el.textContent = message;
    document.getElementById("notices").appendChild(el);
    setTimeout(function () { el.remove(); }, 5000);
  }

  function renderSelection(sel) {
    document.getElementById("customize").classList.toggle("hidden", sel.visibility !== "visible");
    document.getElementById("pathway-id").value = sel.pathway_id || "";
    var body = document.getElementById("entries");
    body.innerHTML = "";
    (sel.entries || []).forEach(function (e) {
      var tr = document.createElement("tr");
      tr.innerHTML = "<td></td><td><input type=color class=bg></td><td><input type=color class=fg></td><td><button type=button>Remove</button></td>";
      tr.children[0].textContent = e.identifier;
      tr.querySelector(".bg").value = e.background.toLowerCase();
      tr.querySelector(".fg").value = e.foreground.toLowerCase();
      tr.querySelectorAll("input").forEach(function (input) {
        input.addEventListener("change", function () {
          api("PUT", "/api/selection/entries/" + encodeURIComponent(e.identifier), {
            background: tr.querySelector(".bg").value,
            foreground: tr.querySelector(".fg").value
          });
        });
      });
      tr.querySelector("button").addEventListener("click", function () {
        api("DELETE", "/api/selection/entries/" + encodeURIComponent(e.identifier));
      });
      body.appendChild(tr);
    });
    var a = document.getElementById("url");
    a.textContent = sel.url || "";
    a.href = sel.url || "#";
    var confirm = document.getElementById("confirm");
    if (sel.pending) {
      confirm.dataset.token = sel.pending.token;
      document.getElementById("confirm-text").textContent =
        "Switching to " + sel.pending.pathway_id + " discards " + sel.pending.discards + " selected genes.";
      confirm.classList.remove("hidden");
    } else {
      confirm.classList.add("hidden");
    }
  }

  function refresh() {
    api("GET", "/api/selection").then(function (r) { renderSelection(r.data); });
  }

  document.getElementById("tree").addEventListener("click", function (ev) {
    var t = ev.target;
    if (t.classList.contains("dir-toggle")) {
      t.parentElement.classList.toggle("expanded");
      return;
    }
    var gene = t.closest("li.gene");
    if (gene && t.tagName === "A") {
      ev.preventDefault();
      api("POST", "/api/selection/entries", { identifier: gene.dataset.gene });
      return;
    }
    if (t.tagName === "BUTTON" && t.dataset.action) {
      var li = t.closest("li.pathway");
      var path = "/api/pathways/" + li.dataset.mapId + "/" + t.dataset.action;
      var query = "?node=" + encodeURIComponent(li.dataset.node);
      if (t.dataset.action === "heatmap") {
        api("GET", path + "-url" + query).then(function (r) {
          if (r.data.url) { window.open(r.data.url, "_blank", "noopener"); }
        });
      } else {
        api("POST", path + query);
      }
    }
  });

  document.getElementById("set-pathway").addEventListener("click", function () {
    api("PUT", "/api/selection/pathway", { pathway_id: document.getElementById("pathway-id").value });
  });
  document.getElementById("build-url").addEventListener("click", function () {
    api("GET", "/api/selection/url");
  });
  document.getElementById("clear").addEventListener("click", function () {
    api("DELETE", "/api/selection/entries");
  });
  document.getElementById("toggle-customize").addEventListener("click", function () {
    api("POST", "/api/selection/toggle");
  });
  document.getElementById("confirm-yes").addEventListener("click", function () {
    api("POST", "/api/confirmations/" + document.getElementById("confirm").dataset.token);
  });
  document.getElementById("confirm-no").addEventListener("click", function () {
    api("DELETE", "/api/confirmations/" + document.getElementById("confirm").dataset.token);
  });
  document.getElementById("reload").addEventListener("click", function () {
    api("POST", "/api/reload");
  });

  function connect() {
    var proto = location.protocol === "https:" ? "wss:" : "ws:";
    var ws = new WebSocket(proto + "//" + location.host + "/ws/events");
    ws.onmessage = function (msg) {
      var ev = JSON.parse(msg.data);
      if (ev.type === "selection") { renderSelection(ev.selection); }
      if (ev.type === "notice") { notice(ev.notice.level, ev.notice.message); refresh(); }
      if (ev.type === "reload") { location.reload(); }
    };
    ws.onclose = function () { setTimeout(connect, 2000); };
  }

  refresh();
  connect();
})();
`
