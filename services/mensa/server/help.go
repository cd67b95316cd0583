package server

import "fmt"

const helpTextTemplate = ansiBold + ansiYellow + "# men.sa" + ansiReset + `
Command line web application for mensa food

` + ansiBold + ansiYellow + "# Usage" + ansiReset + `
Mensa am Adenauerring (default):

    ` + "\033[95m" + `$ curl %[1]s` + ansiReset + `

Mensa Schloss Gottesaue:

    ` + "\033[95m" + `$ curl %[1]s/Gottesaue` + ansiReset + `
    ` + "\033[95m" + `$ curl %[1]s/G` + ansiReset + `

Linie 3 am Adenauerring:

    ` + "\033[95m" + `$ curl %[1]s/A/3` + ansiReset + `

JSON output:

    ` + "\033[95m" + `$ curl %[1]s?format=json` + ansiReset + `

`

const helpHTMLTemplate = `<pre>
    <h1># %[1]s</h1>
    Command line web application for mensa food
    <h1># Usage</h1>
    Mensa am Adenauerring (default):
    <code>
        $ curl %[1]s
    </code>
    Mensa Schloss Gottesaue:
    <code>
        $ curl %[1]s/Gottesaue
        $ curl %[1]s/G
    </code>
    Linie 3 am Adenauerring:
    <code>
        $ curl %[1]s/A/3
    </code>
    JSON output:
    <code>
        $ curl %[1]s?format=json
    </code>
</pre>`

func helpText(host string) string {
	return fmt.Sprintf(helpTextTemplate, host)
}

func helpHTML(host string) string {
	return fmt.Sprintf(helpHTMLTemplate, host)
}
