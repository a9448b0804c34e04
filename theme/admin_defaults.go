package theme

// Built-in admin templates. Every admin page renders inside layout.html,
// which also carries the script that copies the anti-forgery cookie into
// form submissions.

var adminDefaults = []namedTemplate{
	{"layout.html", adminLayout},
	{"message.html", adminMessage},
	{"setup.html", adminSetup},
	{"login.html", adminLogin},
	{"pages.html", adminPages},
	{"editor.html", adminEditor},
	{"users.html", adminUsers},
	{"user_editor.html", adminUserEditor},
}

const adminLayout = `<!doctype html>
<html>
<head>
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{.title}}</title>
    <style>
        html, button, input, select, textarea {
            font-family: "Helvetica Neue", Helvetica, Arial, sans-serif;
            font-size: 16px;
        }
        input, textarea { width: 100%; }
        a { text-decoration: none; }
        body { max-width: 720px; margin: auto; }
        .monaco { font-family: monaco, Consolas, "Lucida Console", monospace; }
        .hidden { display: none; }
        .button { display: inline-block; padding: 0.25em 0.5em; border-radius: 4px;
            background-color: lightgray; color: black; border: none; cursor: pointer; }
        .button.primary { background-color: green; color: white; }
        nav .button { margin-right: 4px; }
    </style>
</head>
<body>

    {{.body}}

    <script>
        var csrfToken = function () {
            var m = document.cookie.match(/xCsrfToken=([^;]+)/);
            return m ? decodeURIComponent(m[1]) : "";
        };
    </script>
</body>
</html>
`

const adminMessage = `<br><br>
<p>{{.message}}</p>
<br>
<a href="javascript:history.back();">&lt; Back</a>
`

const adminSetup = `<h2>ViloLog Setup</h2>
<form method="POST">
    <p>
        <label>Full Name</label>
        <input type="text" name="name" placeholder="Full Name" required>
    </p>
    <p>
        <label>Email Address</label>
        <input type="email" name="email" placeholder="Email Address" class="monaco" required>
    </p>
    <p>
        <label>Password</label>
        <input type="password" name="password" placeholder="Password" required>
    </p>
    <p><button class="button primary">Submit</button></p>
</form>
`

const adminLogin = `<h2>ViloLog Login</h2>
<form method="POST">
    <p><input type="email" name="email" placeholder="Email Address" class="monaco" required></p>
    <p><input type="password" name="password" placeholder="Password" required></p>
    <p><button class="button primary">Submit</button></p>
</form>
`

const adminPages = `<h2>ViloLog ~ All Pages</h2>
<nav>
    <a href="/_newPage" class="button">+ New Page</a>
    <a href="/_users" class="button">&gt; Users</a>
    <a href="/_logout" class="button">&gt; Logout</a>
</nav>
<hr>
{{if not .pageList}}
    <br><br>
    <p>No pages yet. Click '+ New Page' above to create your first!</p>
{{else}}
    <ul>
    {{range .pageList}}
        <li id="page_id_{{.ID}}">
            <h3 style="display: inline-block; margin: 5px 0 0 0;">{{.Meta.Title}}</h3>
            {{if not .Meta.IsDraft}}
                &nbsp; <a href="/{{.Meta.Slug}}" class="button">VIEW</a>
            {{else}}
                &nbsp; <a href="/_previewPage/{{.ID}}" class="button">PREVIEW</a>
            {{end}}
            &nbsp; <a href="/_editPage/{{.ID}}" class="button">EDIT</a>
            &nbsp; <span onclick="delPage('{{.ID}}')" class="button">DEL</span>
        </li>
    {{end}}
    </ul>
    <form id="delForm" class="hidden" method="POST" action="/_deletePage">
        <input name="pageId" value="">
        <input name="xCsrfToken" value="">
        <button>Submit</button>
    </form>
    <script>
        var delForm = document.getElementById("delForm");
        var delPage = function (pageId) {
            if (! confirm("Confirm?")) {
                return null;
            }
            delForm.pageId.value = pageId;
            delForm.xCsrfToken.value = csrfToken();
            delForm.submit();
        };
    </script>
{{end}}
`

const adminEditor = `<h2>ViloLog: Page Composer</h2>
<form id="pageForm" method="POST">
    <p>
        <label>Meta <small>Required props: title, slug, isoDate, template, isDraft</small></label>
        <textarea name="meta" rows="6" class="monaco" required>{{.metaJSON}}</textarea>
    </p>
    <p>
        <label>Body</label>
        <textarea name="body" placeholder="Body ..." rows="15" class="monaco" required>{{with .page}}{{.Body}}{{end}}</textarea>
    </p>
    <p>
        <input type="hidden" name="xCsrfToken" value="">
        <button class="button primary">Save</button>
        &nbsp;<span onclick="openPreview()" class="button">Preview</span>
        <br><br>
        <a href="javascript:history.back();">&lt; Back</a>
    </p>
</form>
<form id="previewForm" method="POST" action="/_previewPage/{{.pageID}}" class="hidden" target="_blank">
    <textarea name="meta"></textarea>
    <textarea name="body"></textarea>
    <input name="xCsrfToken" value="">
    <button>Submit</button>
</form>
<script>
    var pageForm = document.getElementById("pageForm");
    pageForm.onsubmit = function () {
        pageForm.xCsrfToken.value = csrfToken();
        return true;
    };
    var previewForm = document.getElementById("previewForm");
    var openPreview = function () {
        previewForm.meta.value = pageForm.meta.value;
        previewForm.body.value = pageForm.body.value;
        previewForm.xCsrfToken.value = csrfToken();
        previewForm.submit();
    };
</script>
`

const adminUsers = `<h2>ViloLog ~ All Users</h2>
<nav>
    <a href="/_newUser" class="button">+ New User</a>
    <a href="/_pages" class="button">&gt; Pages</a>
    <a href="/_logout" class="button">&gt; Logout</a>
</nav>
<hr>
<ul>
{{range .userList}}
    <li>
        <h3 style="display: inline-block; margin: 5px 0 0 0;">{{.Name}}</h3>
        &nbsp; ({{.Role}})
        &nbsp; <a href="/_editUser/{{.ID}}" class="button">EDIT</a>
    </li>
{{end}}
</ul>
`

const adminUserEditor = `<h2>ViloLog: User Editor</h2>
<form id="userForm" method="POST">
    <p>
        <label>Name</label>
        <input type="text" name="name" value="{{with .thatUser}}{{.Name}}{{end}}" placeholder="Full Name" required>
    </p>
    <p>
        <label>Email</label>
        <input type="email" name="email" value="{{with .thatUser}}{{.Email}}{{end}}" placeholder="Email Address"
            class="monaco" {{if .thatUser}}readonly{{end}} required>
    </p>
    <p>
        <label>Password <small>{{if .thatUser}}(Update Optionally){{end}}</small></label>
        <input type="password" name="password" placeholder="Password" value="">
    </p>
    <p>
        <label>Role</label>
        <input type="text" name="role" placeholder="Role: admin/author/deactivated"
            value="{{with .thatUser}}{{.Role}}{{end}}" pattern="admin|author|deactivated" required>
    </p>
    <p>
        <input type="hidden" name="xCsrfToken" value="">
        <button class="button primary">Save</button>
        <br><br><a href="javascript:history.back();">&lt; Back</a>
    </p>
</form>
<script>
    var userForm = document.getElementById("userForm");
    userForm.onsubmit = function () {
        userForm.xCsrfToken.value = csrfToken();
        return true;
    };
</script>
`
