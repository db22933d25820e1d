package blog

// Version is reported in the RSS generator element and the "Powered by"
// footer line.
const Version = "1.4.2"
