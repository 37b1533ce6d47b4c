// Package page holds the server-rendered page shells. The app itself is a
// static-asset frontend; these components only emit the document skeleton.
package page

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func AppPage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, appShell)
		return err
	})
}

const appShell = `<!DOCTYPE html>
<html lang="en" data-theme="light">
<head>
  <meta charset="utf-8"/>
  <meta name="viewport" content="width=device-width, initial-scale=1"/>
  <title>SmartTodo</title>
  <link rel="stylesheet" href="/static/css/app.css"/>
</head>
<body>
  <header class="topbar">
    <h1>SmartTodo</h1>
    <div class="topbar-actions">
      <select id="themeSelect" title="Theme"></select>
      <button id="themeToggle" class="ghost" type="button">Toggle theme</button>
    </div>
  </header>

  <section class="stats">
    <div class="stat">
      <span>Level <strong id="levelValue">1</strong></span>
      <div class="bar"><div id="xpBar" class="bar-fill"></div></div>
      <span id="xpText">0 / 100</span>
    </div>
    <div class="stat">
      <span>Completed</span>
      <div class="bar"><div id="completionBar" class="bar-fill"></div></div>
      <span id="completionText">0%</span>
    </div>
    <p id="motivation"></p>
  </section>

  <form id="taskForm" class="task-form">
    <input id="titleInput" placeholder="What needs doing?" autocomplete="off"/>
    <input id="categoryInput" placeholder="Category" autocomplete="off"/>
    <select id="priorityInput">
      <option value="high">High</option>
      <option value="medium" selected>Medium</option>
      <option value="low">Low</option>
    </select>
    <input id="dueInput" type="date"/>
    <textarea id="subtaskInput" placeholder="Subtasks, one per line"></textarea>
    <div class="form-actions">
      <button type="submit">Add task</button>
      <button id="voiceBtn" class="ghost" type="button">&#127908; Voice</button>
    </div>
  </form>

  <section class="filters">
    <input id="searchInput" placeholder="Search" autocomplete="off"/>
    <select id="categoryFilter"></select>
    <select id="priorityFilter">
      <option value="all">All priorities</option>
      <option value="high">High</option>
      <option value="medium">Medium</option>
      <option value="low">Low</option>
    </select>
    <select id="viewFilter">
      <option value="all">All</option>
      <option value="overdue">Overdue</option>
      <option value="today">Today</option>
      <option value="week">This week</option>
      <option value="month">This month</option>
    </select>
  </section>

  <main id="taskList" class="task-list"></main>

  <div id="toast" class="toast hidden"></div>

  <script src="/static/js/app.js"></script>
</body>
</html>
`
